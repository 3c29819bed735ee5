// Package fill removes topographic depressions from a DEM so that
// downstream terrain attributes don't blow up inside pits. It implements
// the priority-flood approach: flood inward from the grid border, never
// letting the water level drop.
package fill

import (
	"container/heap"

	"github.com/reliefmap/rrim-utils/internal/raster"
)

type cell struct {
	col, row int
	z        float32
}

type cellHeap []cell

func (h cellHeap) Len() int            { return len(h) }
func (h cellHeap) Less(i, j int) bool  { return h[i].z < h[j].z }
func (h cellHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *cellHeap) Push(x interface{}) { *h = append(*h, x.(cell)) }
func (h *cellHeap) Pop() interface{} {
	old := *h
	n := len(old)
	c := old[n-1]
	*h = old[:n-1]
	return c
}

var neighbours = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Depressions returns a copy of dem in which every depression has been
// raised to its spill elevation. No-data cells are left untouched and act
// as outlets.
func Depressions(dem *raster.Raster) *raster.Raster {
	out := raster.NewLike(dem)
	copy(out.Data, dem.Data)

	w, h := dem.Width, dem.Height
	visited := make([]bool, w*h)
	pq := make(cellHeap, 0, 2*(w+h))

	push := func(col, row int) {
		visited[row*w+col] = true
		heap.Push(&pq, cell{col, row, out.Z(col, row)})
	}

	// seed with the border plus every cell touching no-data
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			if out.IsNoData(out.Z(col, row)) {
				visited[row*w+col] = true
				continue
			}
			if row == 0 || row == h-1 || col == 0 || col == w-1 {
				push(col, row)
			}
		}
	}
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			if visited[row*w+col] || !touchesNoData(out, col, row) {
				continue
			}
			push(col, row)
		}
	}

	for pq.Len() > 0 {
		c := heap.Pop(&pq).(cell)
		for _, n := range neighbours {
			nc, nr := c.col+n[0], c.row+n[1]
			if nc < 0 || nc >= w || nr < 0 || nr >= h || visited[nr*w+nc] {
				continue
			}
			if out.Z(nc, nr) < c.z {
				out.SetZ(nc, nr, c.z)
			}
			push(nc, nr)
		}
	}

	return out
}

func touchesNoData(r *raster.Raster, col, row int) bool {
	for _, n := range neighbours {
		nc, nr := col+n[0], row+n[1]
		if nc < 0 || nc >= r.Width || nr < 0 || nr >= r.Height {
			continue
		}
		if r.IsNoData(r.Z(nc, nr)) {
			return true
		}
	}
	return false
}

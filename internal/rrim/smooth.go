package rrim

import (
	"image"

	"github.com/nfnt/resize"

	"github.com/reliefmap/rrim-utils/internal/raster"
)

// SmoothOpenness runs the differential-openness grid through a bilinear
// half-resolution round trip. Openness sampled on few directions comes
// out visibly pixelated; the round trip knocks the stairsteps off the
// brightness channel without touching slope.
func SmoothOpenness(openness *raster.Raster) *raster.Raster {
	w, h := openness.Width, openness.Height
	if w < 4 || h < 4 {
		return openness
	}

	lo, hi := openness.MinMax()
	span := float64(hi - lo)
	if span == 0 {
		return openness
	}

	// 16 bits keep enough openness resolution through the round trip
	gray := image.NewGray16(image.Rect(0, 0, w, h))
	for i, v := range openness.Data {
		if openness.IsNoData(v) {
			continue
		}
		g := uint16((float64(v-lo) / span) * 65535)
		gray.Pix[i*2] = uint8(g >> 8)
		gray.Pix[i*2+1] = uint8(g)
	}

	down := resize.Resize(uint(w/2), uint(h/2), gray, resize.Bilinear)
	up := resize.Resize(uint(w), uint(h), down, resize.Bicubic).(*image.Gray16)

	out := raster.NewLike(openness)
	for i, v := range openness.Data {
		if openness.IsNoData(v) {
			out.Data[i] = v
			continue
		}
		g := uint16(up.Pix[i*2])<<8 | uint16(up.Pix[i*2+1])
		out.Data[i] = lo + float32(float64(g)/65535*span)
	}
	return out
}

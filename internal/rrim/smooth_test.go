package rrim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reliefmap/rrim-utils/internal/rrim"
)

func TestSmoothOpennessFlatIsIdentity(t *testing.T) {
	data := make([]float32, 64)
	for i := range data {
		data[i] = 3
	}
	opns := gridOf(t, 8, 8, data)

	out := rrim.SmoothOpenness(opns)

	assert.Equal(t, opns.Data, out.Data)
}

func TestSmoothOpennessStaysInRange(t *testing.T) {
	data := make([]float32, 16*16)
	for i := range data {
		// hard checkerboard, the worst case for ringing
		if (i+i/16)%2 == 0 {
			data[i] = -40
		} else {
			data[i] = 40
		}
	}
	opns := gridOf(t, 16, 16, data)

	out := rrim.SmoothOpenness(opns)

	assert.Len(t, out.Data, len(opns.Data))
	for i, v := range out.Data {
		assert.GreaterOrEqual(t, v, float32(-40), "sample %d", i)
		assert.LessOrEqual(t, v, float32(40), "sample %d", i)
	}
}

func TestSmoothOpennessKeepsNoData(t *testing.T) {
	data := make([]float32, 64)
	for i := range data {
		data[i] = float32(i % 7)
	}
	data[20] = -9999
	opns := gridOf(t, 8, 8, data)

	out := rrim.SmoothOpenness(opns)

	assert.Equal(t, float32(-9999), out.Data[20])
}

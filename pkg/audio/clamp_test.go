// Copyright 2020-2021 The OS-NVR Authors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation; version 2.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package audio

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClampInRange(t *testing.T) {
	buf := []float32{0.5, -0.5, 0, 0.9, -0.9}
	want := append([]float32{}, buf...)
	clamp(buf)
	require.Equal(t, want, buf)
}

func TestClampOutOfRange(t *testing.T) {
	buf := []float32{1.5, -1.5, 2, -2}
	clamp(buf)
	require.Equal(t, []float32{1, -1, 1, -1}, buf)
}

func TestClampNaN(t *testing.T) {
	nan := float32(math.NaN())
	buf := []float32{nan, 0.5, nan, -0.5}
	clamp(buf)
	require.Equal(t, []float32{0, 0.5, 0, -0.5}, buf)
}

func TestClampLargeBufferStaysInRange(t *testing.T) {
	buf := make([]float32, 10000)
	for i := range buf {
		buf[i] = float32(math.Sin(float64(i)/100)) * 1.5
	}
	clamp(buf)
	for _, v := range buf {
		require.GreaterOrEqual(t, v, float32(-1))
		require.LessOrEqual(t, v, float32(1))
	}
}

// TestClampWideMatchesScalar is property P2: the wide path must agree with
// the scalar reference sample-for-sample, including at NaN positions.
func TestClampWideMatchesScalar(t *testing.T) {
	scalarBuf := make([]float32, 1024)
	wideBuf := make([]float32, 1024)
	for i := range scalarBuf {
		v := float32(math.Sin(float64(i)/10)) * 2
		scalarBuf[i] = v
		wideBuf[i] = v
	}
	scalarBuf[100] = float32(math.NaN())
	wideBuf[100] = float32(math.NaN())
	scalarBuf[500] = float32(math.NaN())
	wideBuf[500] = float32(math.NaN())

	clampScalar(scalarBuf)
	clampWide(wideBuf)

	require.Equal(t, scalarBuf, wideBuf)
}

func TestClampChannelsAppliesToEachIndependently(t *testing.T) {
	nan := float32(math.NaN())
	channels := [][]float32{
		{1.5, -1.5, 0.5},
		{2, -2, nan},
		{0.9, -0.9, 1.2},
	}
	clampChannels(channels)

	require.Equal(t, []float32{1, -1, 0.5}, channels[0])
	require.Equal(t, []float32{1, -1, 0}, channels[1])
	require.Equal(t, []float32{0.9, -0.9, 1}, channels[2])
}

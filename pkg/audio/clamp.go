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

// Package audio mixes float32 audio buses: fixed-bank accumulation, NaN-safe
// clamping, and bounded per-encoder dispatch queues.
package audio

import (
	"math"
	"sync"

	"compositor/internal/simdcaps"
)

// clampScalar is the portable NaN-to-zero, clamp-to-[-1,1] kernel. It
// defines correctness; clampWide must match it sample-for-sample.
func clampScalar(buf []float32) {
	for i, v := range buf {
		if math.IsNaN(float64(v)) {
			buf[i] = 0
			continue
		}
		if v > 1 {
			buf[i] = 1
		} else if v < -1 {
			buf[i] = -1
		}
	}
}

// clampWide is the lane-unrolled fast path. It processes simdcaps.Width8
// samples per outer step but applies the identical per-sample rule as
// clampScalar, so the two stay byte-identical by construction.
func clampWide(buf []float32) {
	const lane = int(simdcaps.Width8)
	n := len(buf)
	i := 0
	for ; i+lane <= n; i += lane {
		for j := 0; j < lane; j++ {
			v := buf[i+j]
			if math.IsNaN(float64(v)) {
				buf[i+j] = 0
				continue
			}
			if v > 1 {
				buf[i+j] = 1
			} else if v < -1 {
				buf[i+j] = -1
			}
		}
	}
	clampScalar(buf[i:])
}

// clamp dispatches to the wide path when the host advertises the capability
// clampWide was built for, falling back to the scalar reference otherwise.
func clamp(buf []float32) {
	if simdcaps.Has(simdcaps.Width8) {
		clampWide(buf)
		return
	}
	clampScalar(buf)
}

// clampChannels clamps every channel buffer of a bus independently and in
// parallel, matching the original's rayon par_iter_mut over channels.
func clampChannels(channels [][]float32) {
	var wg sync.WaitGroup
	for _, ch := range channels {
		ch := ch
		wg.Add(1)
		go func() {
			defer wg.Done()
			clamp(ch)
		}()
	}
	wg.Wait()
}

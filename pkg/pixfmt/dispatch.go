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

package pixfmt

import "compositor/internal/simdcaps"

func wideEligible(width int) bool {
	return width%LaneWidth == 0 && simdcaps.Has(simdcaps.Width16)
}

// ConvertUYVYToNV12 dispatches to the wide path when the host advertises
// the required capability and width is a multiple of the lane width;
// otherwise it falls through to the scalar reference. Preconditions (W,H
// even, buffers large enough) are not checked; out-of-bounds inputs are
// undefined, per the kernel's contract.
func ConvertUYVYToNV12(input, outY, outUV []byte, width, height, inStride, yStride, uvStride int) {
	if wideEligible(width) {
		convertUYVYToNV12Wide(input, outY, outUV, width, height, inStride, yStride, uvStride)
		return
	}
	ConvertUYVYToNV12Scalar(input, outY, outUV, width, height, inStride, yStride, uvStride)
}

// ConvertUYVYToI420 is ConvertUYVYToNV12's I420 (planar) counterpart.
func ConvertUYVYToI420(input, outY, outU, outV []byte, width, height, inStride, yStride, uStride, vStride int) {
	if wideEligible(width) {
		convertUYVYToI420Wide(input, outY, outU, outV, width, height, inStride, yStride, uStride, vStride)
		return
	}
	ConvertUYVYToI420Scalar(input, outY, outU, outV, width, height, inStride, yStride, uStride, vStride)
}

// ConvertUYVYToI444 is the chroma-upsampled 4:4:4 variant used by the
// preview path.
func ConvertUYVYToI444(input, outY, outU, outV []byte, width, height, inStride, yStride, uStride, vStride int) {
	if wideEligible(width) {
		convertUYVYToI444Wide(input, outY, outU, outV, width, height, inStride, yStride, uStride, vStride)
		return
	}
	ConvertUYVYToI444Scalar(input, outY, outU, outV, width, height, inStride, yStride, uStride, vStride)
}

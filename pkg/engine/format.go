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

package engine

import "compositor/pkg/pixfmt"

// ConvertUYVYToNV12 is the format-conversion boundary: the one free
// function on this boundary, taking buffers, dimensions, and strides
// directly rather than a handle, since there is no persistent state to
// hold a handle to.
func ConvertUYVYToNV12(input, outY, outUV []byte, width, height, inStride, yStride, uvStride int) {
	pixfmt.ConvertUYVYToNV12(input, outY, outUV, width, height, inStride, yStride, uvStride)
}

// ConvertUYVYToI420 is ConvertUYVYToNV12's planar counterpart.
func ConvertUYVYToI420(input, outY, outU, outV []byte, width, height, inStride, yStride, uStride, vStride int) {
	pixfmt.ConvertUYVYToI420(input, outY, outU, outV, width, height, inStride, yStride, uStride, vStride)
}

// ConvertUYVYToI444 is the chroma-upsampled 4:4:4 variant.
func ConvertUYVYToI444(input, outY, outU, outV []byte, width, height, inStride, yStride, uStride, vStride int) {
	pixfmt.ConvertUYVYToI444(input, outY, outU, outV, width, height, inStride, yStride, uStride, vStride)
}

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

// Package pixfmt converts packed UYVY (4:2:2) video into planar/semi-planar
// 4:2:0 layouts (NV12, I420) and the 4:4:4 chroma-upsampled variant (I444).
//
// Each conversion has a scalar reference, which defines correctness, and a
// lane-unrolled "wide" path selected at runtime by internal/simdcaps. The
// wide path is validated against the scalar path byte-for-byte (see the
// package's property test).
package pixfmt

// avgRoundUp computes the unsigned-byte rounded-half-up average of a and b:
// ceil((a+b)/2), matching what a hardware average instruction computes
// (and what the spec's conversion contract requires), not a truncating
// integer divide.
func avgRoundUp(a, b byte) byte {
	return byte((uint16(a) + uint16(b) + 1) / 2)
}

// uyvySample is the decoded (y0, y1, u, v) quad for a pixel pair starting
// at even column x of a UYVY row: layout U0 Y0 V0 Y1.
func uyvySample(row []byte, x int) (y0, y1, u, v byte) {
	base := x * 2
	return row[base+1], row[base+3], row[base], row[base+2]
}

// ConvertUYVYToNV12Scalar converts one UYVY frame to NV12 (Y plane +
// interleaved UV plane, chroma vertically averaged across row pairs).
// W must be even; H must be even.
func ConvertUYVYToNV12Scalar(input, outY, outUV []byte, width, height, inStride, yStride, uvStride int) {
	for y := 0; y < height; y += 2 {
		row0 := input[y*inStride : y*inStride+width*2]
		row1 := input[(y+1)*inStride : (y+1)*inStride+width*2]
		outY0 := outY[y*yStride:]
		outY1 := outY[(y+1)*yStride:]
		outUVRow := outUV[(y / 2) * uvStride:]

		for x := 0; x < width; x += 2 {
			y00, y01, u0, v0 := uyvySample(row0, x)
			y10, y11, u1, v1 := uyvySample(row1, x)

			outY0[x] = y00
			outY0[x+1] = y01
			outY1[x] = y10
			outY1[x+1] = y11

			outUVRow[x] = avgRoundUp(u0, u1)
			outUVRow[x+1] = avgRoundUp(v0, v1)
		}
	}
}

// ConvertUYVYToI420Scalar converts one UYVY frame to I420 (separate Y, U,
// V planes, chroma vertically averaged across row pairs).
func ConvertUYVYToI420Scalar(input, outY, outU, outV []byte, width, height, inStride, yStride, uStride, vStride int) {
	for y := 0; y < height; y += 2 {
		row0 := input[y*inStride : y*inStride+width*2]
		row1 := input[(y+1)*inStride : (y+1)*inStride+width*2]
		outY0 := outY[y*yStride:]
		outY1 := outY[(y+1)*yStride:]
		outURow := outU[(y / 2) * uStride:]
		outVRow := outV[(y / 2) * vStride:]

		for x := 0; x < width; x += 2 {
			y00, y01, u0, v0 := uyvySample(row0, x)
			y10, y11, u1, v1 := uyvySample(row1, x)

			outY0[x] = y00
			outY0[x+1] = y01
			outY1[x] = y10
			outY1[x+1] = y11

			chromaIdx := x / 2
			outURow[chromaIdx] = avgRoundUp(u0, u1)
			outVRow[chromaIdx] = avgRoundUp(v0, v1)
		}
	}
}

// ConvertUYVYToI444Scalar converts one UYVY frame to I444 (full vertical
// and horizontal chroma resolution): luma copied as-is, and each pixel in
// a UYVY-encoded pair is assigned the pair's single encoded chroma sample
// with no averaging (neither vertical, since I444 keeps full row
// resolution, nor horizontal, since there is only one sample per pair to
// begin with).
func ConvertUYVYToI444Scalar(input, outY, outU, outV []byte, width, height, inStride, yStride, uStride, vStride int) {
	for y := 0; y < height; y++ {
		row := input[y*inStride : y*inStride+width*2]
		outYRow := outY[y*yStride:]
		outURow := outU[y*uStride:]
		outVRow := outV[y*vStride:]

		for x := 0; x < width; x += 2 {
			y0, y1, u, v := uyvySample(row, x)
			outYRow[x] = y0
			outYRow[x+1] = y1
			outURow[x] = u
			outURow[x+1] = u
			outVRow[x] = v
			outVRow[x+1] = v
		}
	}
}

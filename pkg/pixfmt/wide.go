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

// LaneWidth is the number of pixels the wide path processes per inner
// iteration. Conversion is only dispatched to the wide path when the
// frame width is a multiple of this.
const LaneWidth = 16

// convertUYVYToNV12Wide is the lane-unrolled fast path for
// ConvertUYVYToNV12Scalar. It shares avgRoundUp and uyvySample with the
// scalar reference so the two stay byte-identical by construction; the
// only difference is processing LaneWidth pixels per inner step instead
// of 2, which is what makes it a legal wide-SIMD replacement candidate.
func convertUYVYToNV12Wide(input, outY, outUV []byte, width, height, inStride, yStride, uvStride int) {
	for y := 0; y < height; y += 2 {
		row0 := input[y*inStride : y*inStride+width*2]
		row1 := input[(y+1)*inStride : (y+1)*inStride+width*2]
		outY0 := outY[y*yStride:]
		outY1 := outY[(y+1)*yStride:]
		outUVRow := outUV[(y / 2) * uvStride:]

		for lane := 0; lane < width; lane += LaneWidth {
			for i := 0; i < LaneWidth; i += 2 {
				x := lane + i
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
}

func convertUYVYToI420Wide(input, outY, outU, outV []byte, width, height, inStride, yStride, uStride, vStride int) {
	for y := 0; y < height; y += 2 {
		row0 := input[y*inStride : y*inStride+width*2]
		row1 := input[(y+1)*inStride : (y+1)*inStride+width*2]
		outY0 := outY[y*yStride:]
		outY1 := outY[(y+1)*yStride:]
		outURow := outU[(y / 2) * uStride:]
		outVRow := outV[(y / 2) * vStride:]

		for lane := 0; lane < width; lane += LaneWidth {
			for i := 0; i < LaneWidth; i += 2 {
				x := lane + i
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
}

func convertUYVYToI444Wide(input, outY, outU, outV []byte, width, height, inStride, yStride, uStride, vStride int) {
	for y := 0; y < height; y++ {
		row := input[y*inStride : y*inStride+width*2]
		outYRow := outY[y*yStride:]
		outURow := outU[y*uStride:]
		outVRow := outV[y*vStride:]

		for lane := 0; lane < width; lane += LaneWidth {
			for i := 0; i < LaneWidth; i += 2 {
				x := lane + i
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
}

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

// Package simdcaps caches the host's wide-SIMD capability so pkg/pixfmt
// and pkg/audio don't each probe golang.org/x/sys/cpu independently.
// Detection runs once; the decision never changes during the process
// lifetime.
package simdcaps

import "golang.org/x/sys/cpu"

// Width is a SIMD lane width, in elements.
type Width int

// Supported lane widths.
const (
	Width8  Width = 8
	Width16 Width = 16
)

var (
	hasWide8  bool
	hasWide16 bool
)

func init() {
	hasWide8 = cpu.X86.HasSSE2
	hasWide16 = cpu.X86.HasAVX2
}

// Has reports whether the host advertises the capability needed for the
// given lane width.
func Has(w Width) bool {
	switch w {
	case Width16:
		return hasWide16
	case Width8:
		return hasWide8
	default:
		return false
	}
}

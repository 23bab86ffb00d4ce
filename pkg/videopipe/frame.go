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

// Package videopipe distributes rendered frames from a single producer to
// many encoder connections: a pre-allocated, alignment-guaranteed frame
// pool feeding a bounded queue that fans out at per-encoder frame-rate
// divisors.
package videopipe

// Format is a pixel format a Frame's planes are laid out for. Values match
// the stable wire enum in the external-interfaces contract so a Format can
// be passed across the engine facade unchanged.
type Format uint32

// Supported pixel formats. Only a subset of the full wire enum has a
// plane-layout implementation in Pool; the rest are reserved values.
const (
	FormatNone Format = 0
	FormatI420 Format = 1
	FormatNV12 Format = 2
	FormatRGBA Format = 6
	FormatBGRA Format = 7
	FormatBGRX Format = 8
)

// Frame is a handle to one pooled frame: up to four plane slices plus their
// strides. Planes beyond what the format needs are nil.
type Frame struct {
	Planes    [4][]byte
	Linesize  [4]uint32
	Width     uint32
	Height    uint32
	Format    Format
	Timestamp uint64
}

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

package videopipe

import (
	"sync"
	"unsafe"
)

// frameAlignment is the byte boundary every plane's first byte must fall
// on, matching what the wide pixel-format kernels assume.
const frameAlignment = 32

type pooledFrame struct {
	backing  []byte
	planes   [4][]byte
	linesize [4]uint32
	inUse    bool
}

// Pool is a fixed-capacity set of pre-allocated, alignment-guaranteed
// frames for one format/resolution. Acquiring beyond capacity returns
// false rather than allocating more.
type Pool struct {
	mu sync.Mutex

	format   Format
	width    uint32
	height   uint32
	capacity int
	frames   []*pooledFrame
}

// NewPool pre-allocates capacity frames sized for format/width/height.
func NewPool(format Format, width, height uint32, capacity int) *Pool {
	p := &Pool{
		format:   format,
		width:    width,
		height:   height,
		capacity: capacity,
		frames:   make([]*pooledFrame, capacity),
	}
	for i := range p.frames {
		p.frames[i] = allocateFrame(format, width, height)
	}
	return p
}

// alignedBuffer over-allocates by frameAlignment-1 bytes and returns the
// sub-slice starting at the first frameAlignment-aligned address, rounding
// the raw allocation up rather than relying on any aligned-alloc API.
func alignedBuffer(size int) []byte {
	raw := make([]byte, size+frameAlignment-1)
	addr := uintptr(unsafe.Pointer(&raw[0]))
	offset := (frameAlignment - int(addr%frameAlignment)) % frameAlignment
	return raw[offset : offset+size : offset+size]
}

func allocateFrame(format Format, width, height uint32) *pooledFrame {
	w, h := int(width), int(height)
	pf := &pooledFrame{}

	switch format {
	case FormatI420:
		ySize := w * h
		uvW, uvH := w/2, h/2
		uvSize := uvW * uvH
		// Each chroma plane starts on the next frameAlignment boundary.
		uOff := (ySize + frameAlignment - 1) / frameAlignment * frameAlignment
		vOff := (uOff + uvSize + frameAlignment - 1) / frameAlignment * frameAlignment
		buf := alignedBuffer(vOff + uvSize)
		pf.backing = buf
		pf.planes[0] = buf[:ySize]
		pf.planes[1] = buf[uOff : uOff+uvSize]
		pf.planes[2] = buf[vOff : vOff+uvSize]
		pf.linesize[0] = uint32(w)
		pf.linesize[1] = uint32(uvW)
		pf.linesize[2] = uint32(uvW)

	case FormatNV12:
		ySize := w * h
		uvSize := w * (h / 2)
		uvOff := (ySize + frameAlignment - 1) / frameAlignment * frameAlignment
		buf := alignedBuffer(uvOff + uvSize)
		pf.backing = buf
		pf.planes[0] = buf[:ySize]
		pf.planes[1] = buf[uvOff : uvOff+uvSize]
		pf.linesize[0] = uint32(w)
		pf.linesize[1] = uint32(w)

	case FormatRGBA, FormatBGRA, FormatBGRX:
		size := w * h * 4
		buf := alignedBuffer(size)
		pf.backing = buf
		pf.planes[0] = buf
		pf.linesize[0] = uint32(w * 4)

	default:
		buf := alignedBuffer(w * h)
		pf.backing = buf
		pf.planes[0] = buf
		pf.linesize[0] = uint32(w)
	}

	return pf
}

// Acquire returns an unused frame and marks it in-use, or false if the
// pool is exhausted.
func (p *Pool) Acquire() (Frame, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, pf := range p.frames {
		if pf.inUse {
			continue
		}
		pf.inUse = true
		return Frame{
			Planes:   pf.planes,
			Linesize: pf.linesize,
			Width:    p.width,
			Height:   p.height,
			Format:   p.format,
		}, true
	}
	return Frame{}, false
}

// Release returns a frame to the pool, matched by its first plane's
// backing address. Frames not recognized as belonging to this pool are
// silently ignored.
func (p *Pool) Release(f Frame) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, pf := range p.frames {
		if len(pf.planes[0]) > 0 && len(f.Planes[0]) > 0 &&
			&pf.planes[0][0] == &f.Planes[0][0] {
			pf.inUse = false
			return
		}
	}
}

// Stats is a snapshot of pool occupancy.
type Stats struct {
	Capacity  int
	InUse     int
	Available int
}

// Stats reports the current pool occupancy.
func (p *Pool) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()

	inUse := 0
	for _, pf := range p.frames {
		if pf.inUse {
			inUse++
		}
	}
	return Stats{Capacity: p.capacity, InUse: inUse, Available: p.capacity - inUse}
}

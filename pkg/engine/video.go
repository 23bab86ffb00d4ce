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

import (
	"fmt"
	"sync"

	"compositor/pkg/videopipe"
)

// FramePOD is the wire representation of one frame: four plane pointers as
// slices, four linesizes, dimensions, format, and timestamp.
type FramePOD struct {
	Planes    [4][]byte
	Linesize  [4]uint32
	Width     uint32
	Height    uint32
	Format    uint32
	Timestamp uint64
}

type videoOutputEntry struct {
	out *videopipe.Output
	// fpsNum/fpsDen are accepted at creation and stored for API
	// completeness; the pipeline paces frames by each connected
	// encoder's own frame-rate divisor rather than by wall-clock time,
	// so these are not consulted internally.
	fpsNum uint32
	fpsDen uint32
}

var (
	videoMu     sync.Mutex
	videoOutputs = map[Handle]*videoOutputEntry{}
	nextVideo   Handle
)

// CreateVideoOutput allocates a video output pipeline and returns its
// handle.
func CreateVideoOutput(width, height, fpsNum, fpsDen uint32) Handle {
	videoMu.Lock()
	defer videoMu.Unlock()
	nextVideo++
	h := nextVideo
	videoOutputs[h] = &videoOutputEntry{
		out:    videopipe.NewOutput(width, height, fmt.Sprintf("video-%d", h), currentLogger()),
		fpsNum: fpsNum,
		fpsDen: fpsDen,
	}
	return h
}

// DestroyVideoOutput stops and releases a video output pipeline.
func DestroyVideoOutput(h Handle) {
	videoMu.Lock()
	entry, ok := videoOutputs[h]
	delete(videoOutputs, h)
	videoMu.Unlock()

	if ok {
		entry.out.Shutdown()
	}
}

func lookupVideoOutput(h Handle) (*videopipe.Output, bool) {
	videoMu.Lock()
	defer videoMu.Unlock()
	entry, ok := videoOutputs[h]
	if !ok {
		return nil, false
	}
	return entry.out, true
}

// LockFrame acquires a frame from the pool, writing it into out. Returns 0
// if the handle is invalid or the pool is exhausted, 1 on success.
func LockFrame(h Handle, out *FramePOD) int {
	o, ok := lookupVideoOutput(h)
	if !ok {
		return 0
	}
	frame, ok := o.LockFrame()
	if !ok {
		return 0
	}
	out.Planes = frame.Planes
	out.Linesize = frame.Linesize
	out.Width = frame.Width
	out.Height = frame.Height
	out.Format = uint32(frame.Format)
	return 1
}

// UnlockFrame enqueues a filled frame for distribution. Returns 0 if the
// handle is invalid or the frame queue is full, 1 on success.
func UnlockFrame(h Handle, pod FramePOD, timestamp uint64) int {
	o, ok := lookupVideoOutput(h)
	if !ok {
		return 0
	}
	frame := videopipe.Frame{
		Planes:   pod.Planes,
		Linesize: pod.Linesize,
		Width:    pod.Width,
		Height:   pod.Height,
		Format:   videopipe.Format(pod.Format),
	}
	if o.UnlockFrame(frame, timestamp) {
		return 1
	}
	return 0
}

// VideoStats mirrors videopipe.OutputStats' counters.
type VideoStats struct {
	TotalFrames   uint64
	SkippedFrames uint64
}

// VideoOutputStats returns the video output's frame counters, zero-valued for an
// invalid handle.
func VideoOutputStats(h Handle) VideoStats {
	o, ok := lookupVideoOutput(h)
	if !ok {
		return VideoStats{}
	}
	s := o.Stats()
	return VideoStats{TotalFrames: s.TotalFrames, SkippedFrames: s.SkippedFrames}
}

// ConnectVideoEncoder wires a new encoder into the output at the given
// frame-rate divisor. Returns the connection id and channel, or (0, nil)
// for an invalid handle.
func ConnectVideoEncoder(h Handle, frameRateDivisor uint32) (uint64, <-chan videopipe.Frame) {
	o, ok := lookupVideoOutput(h)
	if !ok {
		return 0, nil
	}
	return o.ConnectEncoder(frameRateDivisor)
}

// DisconnectVideoEncoder removes an encoder connection by id.
func DisconnectVideoEncoder(h Handle, encoderID uint64) {
	o, ok := lookupVideoOutput(h)
	if !ok {
		return
	}
	o.DisconnectEncoder(encoderID)
}

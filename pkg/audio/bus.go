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
	"sync"

	"compositor/pkg/log"
)

// encoderConnBufSize is the bounded dispatch channel capacity per encoder
// connection.
const encoderConnBufSize = 4

type encoderConn struct {
	tx           chan Data
	useUnclamped bool
}

// Bus is one mix: a fixed sample-rate/channel/frame-count accumulator with
// dual clamped and unclamped buffers, and a set of encoder connections each
// requesting one or the other.
type Bus struct {
	mu sync.Mutex

	sampleRate uint32
	frames     int
	channels   int

	clamped   Data
	unclamped Data

	encoders []*encoderConn

	name   string
	logger *log.Logger
}

// NewBus allocates a bus's accumulator buffers. name identifies this bus in
// log events; logger may be nil, in which case the bus never logs.
func NewBus(sampleRate uint32, frames, channels int, name string, logger *log.Logger) *Bus {
	return &Bus{
		sampleRate: sampleRate,
		frames:     frames,
		channels:   channels,
		clamped:    NewData(channels, frames),
		unclamped:  NewData(channels, frames),
		name:       name,
		logger:     logger,
	}
}

// SampleRate is this bus's fixed sample rate.
func (b *Bus) SampleRate() uint32 { return b.sampleRate }

// FramesPerBuffer is this bus's fixed buffer length.
func (b *Bus) FramesPerBuffer() int { return b.frames }

// Channels is this bus's fixed channel count.
func (b *Bus) Channels() int { return b.channels }

// HasInputs reports whether any encoder is currently connected.
func (b *Bus) HasInputs() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.encoders) > 0
}

// InputCount is the number of currently connected encoders.
func (b *Bus) InputCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.encoders)
}

// ConnectEncoder registers a new encoder connection and returns the
// channel it will receive mixed buffers on. useUnclamped selects whether
// the encoder wants the raw (possibly out-of-range) sum or the
// safety-clamped version.
func (b *Bus) ConnectEncoder(useUnclamped bool) <-chan Data {
	b.mu.Lock()
	defer b.mu.Unlock()

	conn := &encoderConn{
		tx:           make(chan Data, encoderConnBufSize),
		useUnclamped: useUnclamped,
	}
	b.encoders = append(b.encoders, conn)
	return conn.tx
}

// DisconnectAll drops every encoder connection.
func (b *Bus) DisconnectAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.encoders = nil
}

// MixSources sums sources into the bus's accumulators. Each source's
// channel and frame counts are truncated to the bus's own: a mismatched
// source is accepted, and its channels and frames beyond the bus's are
// dropped rather than mixed down.
func (b *Bus) MixSources(sources []Data) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.clamped.Clear()
	b.unclamped.Clear()

	for _, src := range sources {
		chLimit := len(src.Channels)
		if chLimit > b.channels {
			chLimit = b.channels
		}
		for chIdx := 0; chIdx < chLimit; chIdx++ {
			srcCh := src.Channels[chIdx]
			frameLimit := len(srcCh)
			if frameLimit > b.frames {
				frameLimit = b.frames
			}
			dst := b.unclamped.Channels[chIdx]
			for i := 0; i < frameLimit; i++ {
				dst[i] += srcCh[i]
			}
		}
	}

	for ch, src := range b.unclamped.Channels {
		copy(b.clamped.Channels[ch], src)
	}
	clampChannels(b.clamped.Channels)
}

// Process dispatches the current mix to every connected encoder
// (non-blocking; a full queue is simply skipped) and then drops any
// connection whose queue was observed full, treating a momentarily-slow
// encoder and a dead one identically.
func (b *Bus) Process() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.encoders) == 0 {
		return
	}

	live := b.encoders[:0]
	for _, enc := range b.encoders {
		var payload Data
		if enc.useUnclamped {
			payload = b.unclamped.Clone()
		} else {
			payload = b.clamped.Clone()
		}

		select {
		case enc.tx <- payload:
		default:
		}

		if len(enc.tx) < cap(enc.tx) {
			live = append(live, enc)
		} else if b.logger != nil {
			b.logger.Warn().Src("audio").Instance(b.name).
				Msg("dropping encoder connection: dispatch queue observed full")
		}
	}
	b.encoders = live
}

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

	"compositor/pkg/audio"
)

// AudioConfigPOD is the wire representation of a mixer's fixed parameters.
type AudioConfigPOD struct {
	SampleRate uint32
	Channels   uint32
	Frames     uint32
	Format     uint32
	Layout     uint32
}

var (
	mixersMu sync.Mutex
	mixers   = map[Handle]*audio.Mixer{}
	nextMixer Handle
)

// CreateMixer allocates a mixer with the fixed bank of buses the given
// config implies.
func CreateMixer(pod AudioConfigPOD) Handle {
	mixersMu.Lock()
	defer mixersMu.Unlock()
	nextMixer++
	h := nextMixer
	mixers[h] = audio.NewMixer(audio.Config{
		SampleRate: pod.SampleRate,
		Channels:   int(pod.Channels),
		Frames:     int(pod.Frames),
		Format:     audio.Format(pod.Format),
		Layout:     audio.SpeakerLayout(pod.Layout),
	}, fmt.Sprintf("mixer-%d", h), currentLogger())
	return h
}

// DestroyMixer releases a mixer handle.
func DestroyMixer(h Handle) {
	mixersMu.Lock()
	defer mixersMu.Unlock()
	delete(mixers, h)
}

func lookupMixer(h Handle) (*audio.Mixer, bool) {
	mixersMu.Lock()
	defer mixersMu.Unlock()
	m, ok := mixers[h]
	return m, ok
}

// ProcessMixer runs one mix-and-dispatch pass across every active bus. A
// no-op for an invalid handle.
func ProcessMixer(h Handle) {
	m, ok := lookupMixer(h)
	if !ok {
		return
	}
	m.ProcessAllMixes()
}

// FramesProcessed returns the mixer's frames-processed counter, 0 for an
// invalid handle.
func FramesProcessed(h Handle) uint64 {
	m, ok := lookupMixer(h)
	if !ok {
		return 0
	}
	return m.Stats().FramesProcessed
}

// GetMixerBus returns one bus of a mixer by index, for the caller to feed
// sources into and connect encoders to directly.
func GetMixerBus(h Handle, index int) *audio.Bus {
	m, ok := lookupMixer(h)
	if !ok {
		return nil
	}
	return m.GetMix(index)
}

// LayoutChannelCount returns the channel count implied by a wire speaker
// layout value, 0 for an unrecognized value. Exposed so a caller can
// validate a layout before sizing buffers around it, without allocating a
// mixer first.
func LayoutChannelCount(layout uint32) int {
	return audio.SpeakerLayout(layout).ChannelCount()
}

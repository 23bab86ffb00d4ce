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
	"fmt"
	"sync"
	"sync/atomic"

	"compositor/pkg/log"
)

// MaxMixes is the fixed size of a Mixer's bus bank.
const MaxMixes = 6

// Mixer owns a fixed bank of MaxMixes buses and fans ProcessAllMixes out
// across them.
type Mixer struct {
	config Config
	mixes  [MaxMixes]*Bus

	framesProcessed uint64 // atomic
}

// NewMixer allocates all MaxMixes buses up front. name identifies this
// mixer in log events; logger may be nil, in which case neither the mixer
// nor any of its buses ever log.
func NewMixer(config Config, name string, logger *log.Logger) *Mixer {
	m := &Mixer{config: config}
	for i := range m.mixes {
		m.mixes[i] = NewBus(config.SampleRate, config.Frames, config.Channels,
			fmt.Sprintf("%s.bus%d", name, i), logger)
	}
	return m
}

// GetMix returns the bus at index, or nil if index is out of range.
func (m *Mixer) GetMix(index int) *Bus {
	if index < 0 || index >= len(m.mixes) {
		return nil
	}
	return m.mixes[index]
}

// ProcessAllMixes runs Process on every bus that currently has inputs,
// fanning the work out across goroutines and waiting for all to finish.
// The frames-processed counter increments exactly once per call, not once
// per bus.
func (m *Mixer) ProcessAllMixes() {
	var wg sync.WaitGroup
	for _, mix := range m.mixes {
		mix := mix
		if !mix.HasInputs() {
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			mix.Process()
		}()
	}
	wg.Wait()

	atomic.AddUint64(&m.framesProcessed, 1)
}

// Stats is a snapshot of mixer-wide activity.
type Stats struct {
	FramesProcessed uint64
	ActiveMixes     int
	TotalInputs     int
}

// Stats reports the current mixer-wide counters.
func (m *Mixer) Stats() Stats {
	var active, total int
	for _, mix := range m.mixes {
		n := mix.InputCount()
		if n > 0 {
			active++
			total += n
		}
	}
	return Stats{
		FramesProcessed: atomic.LoadUint64(&m.framesProcessed),
		ActiveMixes:     active,
		TotalInputs:     total,
	}
}

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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewMixerAllocatesFixedBank(t *testing.T) {
	m := NewMixer(DefaultConfig(), "test", nil)
	for i := 0; i < MaxMixes; i++ {
		require.NotNil(t, m.GetMix(i))
	}
	require.Nil(t, m.GetMix(-1))
	require.Nil(t, m.GetMix(MaxMixes))

	stats := m.Stats()
	require.Equal(t, uint64(0), stats.FramesProcessed)
	require.Equal(t, 0, stats.ActiveMixes)
}

func TestMixerStatsCountsOnlyActiveMixes(t *testing.T) {
	m := NewMixer(DefaultConfig(), "test", nil)
	m.GetMix(0).ConnectEncoder(false)
	m.GetMix(0).ConnectEncoder(true)
	m.GetMix(2).ConnectEncoder(false)

	stats := m.Stats()
	require.Equal(t, 2, stats.ActiveMixes)
	require.Equal(t, 3, stats.TotalInputs)
}

// TestProcessAllMixesIncrementsCounterOncePerCall is property P3: the
// frames-processed counter advances once per ProcessAllMixes call,
// regardless of how many buses have inputs.
func TestProcessAllMixesIncrementsCounterOncePerCall(t *testing.T) {
	m := NewMixer(DefaultConfig(), "test", nil)
	m.GetMix(0).ConnectEncoder(false)
	m.GetMix(3).ConnectEncoder(false)
	m.GetMix(5).ConnectEncoder(true)

	m.ProcessAllMixes()
	require.Equal(t, uint64(1), m.Stats().FramesProcessed)

	m.ProcessAllMixes()
	m.ProcessAllMixes()
	require.Equal(t, uint64(3), m.Stats().FramesProcessed)
}

func TestProcessAllMixesDispatchesFromConnectedBus(t *testing.T) {
	m := NewMixer(DefaultConfig(), "test", nil)
	ch := m.GetMix(1).ConnectEncoder(false)

	src := NewData(m.config.Channels, m.config.Frames)
	m.GetMix(1).MixSources([]Data{src})

	m.ProcessAllMixes()

	select {
	case <-ch:
	default:
		t.Fatal("expected a buffer to be dispatched from the connected bus")
	}
}

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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSceneAddRemoveItem(t *testing.T) {
	h := CreateScene(1920, 1080)
	defer DestroySceneHandle(h)

	id := AddItem(h, ItemPOD{SourceID: 1, ScaleX: 1, ScaleY: 1, Visible: true})
	require.GreaterOrEqual(t, id, int64(1))
	require.Equal(t, 1, ItemCount(h))

	require.Equal(t, 1, RemoveItem(h, id))
	require.Equal(t, 0, ItemCount(h))
}

func TestSceneOperationsOnInvalidHandleAreNoOps(t *testing.T) {
	require.Equal(t, int64(-1), AddItem(Handle(99999), ItemPOD{}))
	require.Equal(t, 0, RemoveItem(Handle(99999), 1))
	require.Equal(t, 0, ItemCount(Handle(99999)))
}

func TestSceneRenderInvokesCallbackPerVisibleItem(t *testing.T) {
	h := CreateScene(100, 100)
	defer DestroySceneHandle(h)

	AddItem(h, ItemPOD{SourceID: 7, ScaleX: 1, ScaleY: 1, Visible: true})
	AddItem(h, ItemPOD{SourceID: 8, ScaleX: 1, ScaleY: 1, Visible: false})

	var seen []uint64
	Render(h, func(sourceID uint64, transform [16]float32, blendMode uint32, userCtx interface{}) {
		seen = append(seen, sourceID)
	}, nil)

	require.Equal(t, []uint64{7}, seen)
}

func TestVideoOutputLockUnlockRoundTrip(t *testing.T) {
	h := CreateVideoOutput(16, 16, 30, 1)
	defer DestroyVideoOutput(h)

	var pod FramePOD
	require.Equal(t, 1, LockFrame(h, &pod))
	require.Equal(t, 1, UnlockFrame(h, pod, 42))

	stats := VideoOutputStats(h)
	require.Equal(t, uint64(0), stats.SkippedFrames)
}

func TestVideoOutputInvalidHandleReturnsZero(t *testing.T) {
	var pod FramePOD
	require.Equal(t, 0, LockFrame(Handle(99999), &pod))
	require.Equal(t, 0, UnlockFrame(Handle(99999), pod, 0))
}

func TestMixerProcessAndFramesProcessed(t *testing.T) {
	h := CreateMixer(AudioConfigPOD{SampleRate: 48000, Channels: 2, Frames: 16, Format: 4, Layout: 2})
	defer DestroyMixer(h)

	bus := GetMixerBus(h, 0)
	require.NotNil(t, bus)
	bus.ConnectEncoder(false)

	ProcessMixer(h)
	require.Equal(t, uint64(1), FramesProcessed(h))
}

func TestMixerSevenOneLayoutWireValueYieldsEightChannels(t *testing.T) {
	require.Equal(t, 8, LayoutChannelCount(8))
	require.Equal(t, 0, LayoutChannelCount(7))

	h := CreateMixer(AudioConfigPOD{SampleRate: 48000, Channels: 8, Frames: 16, Format: 4, Layout: 8})
	defer DestroyMixer(h)

	bus := GetMixerBus(h, 0)
	require.NotNil(t, bus)
	require.Equal(t, LayoutChannelCount(8), bus.Channels())
}

func TestFormatConversionBoundaryDelegatesToPixfmt(t *testing.T) {
	width, height := 4, 2
	input := make([]byte, width*height*2)
	for i := range input {
		input[i] = byte(i)
	}
	outY := make([]byte, width*height)
	outUV := make([]byte, width*height/2)

	ConvertUYVYToNV12(input, outY, outUV, width, height, width*2, width, width)
	require.NotEmpty(t, outY)
}

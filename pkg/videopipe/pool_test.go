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
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestPoolAcquireRelease(t *testing.T) {
	pool := NewPool(FormatNV12, 1920, 1080, 4)

	stats := pool.Stats()
	require.Equal(t, 4, stats.Capacity)
	require.Equal(t, 4, stats.Available)

	f1, ok := pool.Acquire()
	require.True(t, ok)
	require.Equal(t, 1, pool.Stats().InUse)

	f2, ok := pool.Acquire()
	require.True(t, ok)
	require.Equal(t, 2, pool.Stats().InUse)

	pool.Release(f1)
	require.Equal(t, 1, pool.Stats().InUse)

	pool.Release(f2)
	require.Equal(t, 0, pool.Stats().InUse)
}

func TestPoolExhaustion(t *testing.T) {
	pool := NewPool(FormatI420, 640, 480, 2)

	_, ok1 := pool.Acquire()
	_, ok2 := pool.Acquire()
	_, ok3 := pool.Acquire()

	require.True(t, ok1)
	require.True(t, ok2)
	require.False(t, ok3, "pool should be exhausted")
}

func TestPoolFrameAlignment(t *testing.T) {
	pool := NewPool(FormatNV12, 1920, 1080, 1)
	frame, ok := pool.Acquire()
	require.True(t, ok)

	require.Equal(t, uintptr(0), uintptr(unsafe.Pointer(&frame.Planes[0][0]))%frameAlignment,
		"Y plane not aligned")
	require.Equal(t, uintptr(0), uintptr(unsafe.Pointer(&frame.Planes[1][0]))%frameAlignment,
		"UV plane not aligned")
}

func TestPoolI420PlaneSizes(t *testing.T) {
	pool := NewPool(FormatI420, 64, 32, 1)
	frame, ok := pool.Acquire()
	require.True(t, ok)

	require.Len(t, frame.Planes[0], 64*32)
	require.Len(t, frame.Planes[1], 32*16)
	require.Len(t, frame.Planes[2], 32*16)
}

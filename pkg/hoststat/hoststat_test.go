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

package hoststat

import (
	"context"
	"testing"
	"time"

	"compositor/pkg/log"

	"github.com/shirou/gopsutil/v3/mem"
	"github.com/stretchr/testify/require"
)

func TestSamplerUpdate(t *testing.T) {
	s := New(log.NewMockLogger())
	s.cpu = func(context.Context, time.Duration, bool) ([]float64, error) {
		return []float64{42.5}, nil
	}
	s.ram = func() (*mem.VirtualMemoryStat, error) {
		return &mem.VirtualMemoryStat{UsedPercent: 77.2}, nil
	}

	err := s.update(context.Background())
	require.NoError(t, err)

	got := s.Status()
	require.Equal(t, 42, got.CPUUsage)
	require.Equal(t, 77, got.RAMUsage)
}

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

// Package hoststat samples host CPU and memory usage for the telemetry
// layer. The core itself persists nothing and has no disk usage to report.
package hoststat

import (
	"context"
	"fmt"
	"sync"
	"time"

	"compositor/pkg/log"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// Status is a snapshot of host resource usage.
type Status struct {
	CPUUsage int `json:"cpuUsage"`
	RAMUsage int `json:"ramUsage"`
}

type (
	cpuFunc func(context.Context, time.Duration, bool) ([]float64, error)
	ramFunc func() (*mem.VirtualMemoryStat, error)
)

// Sampler periodically samples host CPU/RAM usage.
type Sampler struct {
	cpu cpuFunc
	ram ramFunc

	status   Status
	duration time.Duration

	log *log.Logger
	mu  sync.Mutex
	o   sync.Once
}

// New returns a new Sampler.
func New(logger *log.Logger) *Sampler {
	return &Sampler{
		cpu:      cpu.PercentWithContext,
		ram:      mem.VirtualMemory,
		duration: 10 * time.Second,
		log:      logger,
	}
}

func (s *Sampler) update(ctx context.Context) error {
	cpuUsage, err := s.cpu(ctx, s.duration, false)
	if err != nil {
		return fmt.Errorf("could not get cpu usage: %w", err)
	}
	ramUsage, err := s.ram()
	if err != nil {
		return fmt.Errorf("could not get ram usage: %w", err)
	}

	s.mu.Lock()
	s.status = Status{
		CPUUsage: int(cpuUsage[0]),
		RAMUsage: int(ramUsage.UsedPercent),
	}
	s.mu.Unlock()

	return nil
}

// StatusLoop samples host status until context is canceled. Idempotent:
// calling it more than once only starts the loop on the first call.
func (s *Sampler) StatusLoop(ctx context.Context) {
	s.o.Do(func() {
		for {
			if ctx.Err() != nil {
				return
			}
			if err := s.update(ctx); err != nil {
				s.log.Error().Src("hoststat").Msgf("could not update host status: %v", err)
			}
		}
	})
}

// Status returns the most recent cpu/ram usage snapshot.
func (s *Sampler) Status() Status {
	defer s.mu.Unlock()
	s.mu.Lock()
	return s.status
}

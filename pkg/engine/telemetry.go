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
	"context"
	"sync"
	"time"

	"compositor/internal/telemetry"
	"compositor/pkg/hoststat"
	"compositor/pkg/log"
)

var (
	telemetryMu  sync.Mutex
	telemetryWG  sync.WaitGroup
	engineLogger *log.Logger
	hostSampler  *hoststat.Sampler
)

// StartTelemetry wires up the engine's ambient observability stack: a
// started Logger that every mixer and video output created from this point
// on will log boundary events (dropped frames, reaped encoder connections)
// to, a hoststat.Sampler polling host CPU/RAM every ten seconds, and a
// Broadcaster that folds both together with the live mixer/video-output
// registries into one Snapshot per interval. Call once at process startup;
// canceling ctx stops the logger, the sampler, and the broadcaster.
//
// Mixers and video outputs created before StartTelemetry runs keep the nil
// logger they were built with and simply never log.
func StartTelemetry(ctx context.Context, interval time.Duration) *telemetry.Broadcaster {
	telemetryMu.Lock()
	engineLogger = log.NewLogger(&telemetryWG)
	engineLogger.Start(ctx)

	hostSampler = hoststat.New(engineLogger)
	telemetryMu.Unlock()

	go hostSampler.StatusLoop(ctx)

	b := telemetry.NewBroadcaster(sampleSnapshot, interval, &telemetryWG)
	b.Start(ctx)
	return b
}

// currentLogger returns the logger StartTelemetry last installed, or nil
// if it has not been called yet.
func currentLogger() *log.Logger {
	telemetryMu.Lock()
	defer telemetryMu.Unlock()
	return engineLogger
}

// sampleSnapshot folds every live mixer's and video output's counters,
// plus the host sampler's last reading, into one Snapshot. Grounded on
// telemetry.Snapshot's field set, which maps 1:1 onto audio.Stats,
// videopipe.OutputStats, and hoststat.Status.
func sampleSnapshot() telemetry.Snapshot {
	var framesProcessed uint64
	var activeMixes, totalInputs int

	mixersMu.Lock()
	for _, m := range mixers {
		s := m.Stats()
		framesProcessed += s.FramesProcessed
		activeMixes += s.ActiveMixes
		totalInputs += s.TotalInputs
	}
	mixersMu.Unlock()

	var skippedFrames uint64
	videoMu.Lock()
	for _, entry := range videoOutputs {
		skippedFrames += entry.out.Stats().SkippedFrames
	}
	videoMu.Unlock()

	telemetryMu.Lock()
	sampler := hostSampler
	telemetryMu.Unlock()

	var host hoststat.Status
	if sampler != nil {
		host = sampler.Status()
	}

	return telemetry.Snapshot{
		Time:            time.Now().Unix(),
		FramesProcessed: framesProcessed,
		SkippedFrames:   skippedFrames,
		ActiveMixes:     activeMixes,
		TotalInputs:     totalInputs,
		CPUUsage:        host.CPUUsage,
		RAMUsage:        host.RAMUsage,
	}
}

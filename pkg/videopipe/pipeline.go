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
	"context"
	"sync"
	"sync/atomic"

	"compositor/pkg/log"
)

// queueCapacity is the bounded producer->distributor frame queue depth.
const queueCapacity = 16

// poolHeadroom is how many extra frames the pool carries beyond the queue
// depth, so a frame can be in flight to several encoders while the
// producer keeps locking new ones.
const poolHeadroom = 4

// encoderConnBufSize is the bounded per-encoder dispatch channel capacity.
const encoderConnBufSize = 4

type encoderConn struct {
	id                uint64
	frameRateDivisor  uint32
	frameCount        uint32
	tx                chan Frame
}

// Output is one rendered-video fan-out point: a single producer locks and
// unlocks frames, a distribution goroutine divides them out across
// connected encoders at each encoder's own frame-rate divisor.
type Output struct {
	pool  *Pool
	queue chan Frame

	mu       sync.Mutex
	encoders []*encoderConn
	nextID   uint64

	totalFrames   uint64 // atomic
	skippedFrames uint64 // atomic

	cancel context.CancelFunc
	done   chan struct{}

	name   string
	logger *log.Logger
}

// NewOutput allocates the frame pool and queue and starts the
// distribution goroutine. Call Shutdown to stop it. name identifies this
// output in log events; logger may be nil, in which case it never logs.
func NewOutput(width, height uint32, name string, logger *log.Logger) *Output {
	o := &Output{
		pool:   NewPool(FormatNV12, width, height, queueCapacity+poolHeadroom),
		queue:  make(chan Frame, queueCapacity),
		done:   make(chan struct{}),
		name:   name,
		logger: logger,
	}

	ctx, cancel := context.WithCancel(context.Background())
	o.cancel = cancel
	go o.run(ctx)
	return o
}

// LockFrame acquires a frame from the pool for the producer to fill in.
func (o *Output) LockFrame() (Frame, bool) {
	return o.pool.Acquire()
}

// UnlockFrame enqueues a filled frame for distribution. If the queue is
// full the frame is dropped (the skipped-frame counter advances) and
// returned to the pool immediately.
func (o *Output) UnlockFrame(f Frame, timestamp uint64) bool {
	f.Timestamp = timestamp
	select {
	case o.queue <- f:
		return true
	default:
		atomic.AddUint64(&o.skippedFrames, 1)
		o.pool.Release(f)
		if o.logger != nil {
			o.logger.Warn().Src("videopipe").Instance(o.name).
				Msg("dropping frame: distribution queue full")
		}
		return false
	}
}

// ConnectEncoder registers a new encoder connection that should receive
// every frameRateDivisor-th frame, and returns the channel it will arrive
// on.
func (o *Output) ConnectEncoder(frameRateDivisor uint32) (uint64, <-chan Frame) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.nextID++
	conn := &encoderConn{
		id:               o.nextID,
		frameRateDivisor: frameRateDivisor,
		tx:               make(chan Frame, encoderConnBufSize),
	}
	o.encoders = append(o.encoders, conn)
	return conn.id, conn.tx
}

// DisconnectEncoder removes a connection by id.
func (o *Output) DisconnectEncoder(id uint64) {
	o.mu.Lock()
	defer o.mu.Unlock()

	live := o.encoders[:0]
	for _, e := range o.encoders {
		if e.id != id {
			live = append(live, e)
		}
	}
	o.encoders = live
}

// OutputStats is a snapshot of pipeline-wide activity.
type OutputStats struct {
	TotalFrames   uint64
	SkippedFrames uint64
	QueuedFrames  int
	Pool          Stats
}

// Stats reports pipeline-wide counters.
func (o *Output) Stats() OutputStats {
	return OutputStats{
		TotalFrames:   atomic.LoadUint64(&o.totalFrames),
		SkippedFrames: atomic.LoadUint64(&o.skippedFrames),
		QueuedFrames:  len(o.queue),
		Pool:          o.pool.Stats(),
	}
}

// Shutdown stops the distribution goroutine. Idempotent.
func (o *Output) Shutdown() {
	select {
	case <-o.done:
		return
	default:
	}
	o.cancel()
	<-o.done
}

func (o *Output) run(ctx context.Context) {
	defer close(o.done)
	for {
		select {
		case <-ctx.Done():
			return
		case frame := <-o.queue:
			o.dispatch(frame)
			atomic.AddUint64(&o.totalFrames, 1)
		}
	}
}

// dispatch fans a frame out to every connected encoder whose divisor has
// come due, then reaps any connection whose queue was observed full —
// collapsing a momentarily slow encoder and a dead one into the same
// outcome, matching the pipeline's backpressure contract.
func (o *Output) dispatch(frame Frame) {
	o.mu.Lock()
	defer o.mu.Unlock()

	live := o.encoders[:0]
	for _, enc := range o.encoders {
		enc.frameCount++
		if enc.frameCount >= enc.frameRateDivisor {
			enc.frameCount = 0
			select {
			case enc.tx <- frame:
			default:
			}
		}

		if len(enc.tx) < cap(enc.tx) {
			live = append(live, enc)
		} else if o.logger != nil {
			o.logger.Warn().Src("videopipe").Instance(o.name).
				Msgf("dropping encoder connection %d: dispatch queue observed full", enc.id)
		}
	}
	o.encoders = live
}

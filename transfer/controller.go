// snapcam - capture one still image and send it to a paired device
//  Copyright (C) 2026, The Veea Project
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

// Package transfer drives one capture job at a time: acquire a frame,
// encode it, announce its shape to the paired peer and stream the
// encoded bytes out in payload-sized chunks.
package transfer

import (
	"bytes"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/juju/ratelimit"

	"github.com/veea-project/snapcam/encoder"
	"github.com/veea-project/snapcam/frames"
	"github.com/veea-project/snapcam/loglimiter"
)

const minLogInterval = time.Minute

// State of the transfer job.
type State uint8

const (
	Idle State = iota
	Capturing
	Announcing
	Streaming
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Capturing:
		return "capturing"
	case Announcing:
		return "announcing"
	case Streaming:
		return "streaming"
	case Done:
		return "done"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// FailReason says why a job ended without delivering its image.
type FailReason uint8

const (
	FailNone FailReason = iota
	FailSourceUnavailable
	FailNoFrame
	FailUnsupportedFormat
	FailEncodeError
	FailNoSubscriber
	FailTransferAborted
)

func (r FailReason) String() string {
	switch r {
	case FailNone:
		return "none"
	case FailSourceUnavailable:
		return "source unavailable"
	case FailNoFrame:
		return "no frame"
	case FailUnsupportedFormat:
		return "unsupported format"
	case FailEncodeError:
		return "encode error"
	case FailNoSubscriber:
		return "no subscriber"
	case FailTransferAborted:
		return "transfer aborted"
	}
	return fmt.Sprintf("FailReason(%d)", uint8(r))
}

// Config holds the per-controller knobs.
type Config struct {
	// Format selects the container for every capture.
	Format encoder.Format

	// AcquireTimeout bounds the wait for a frame from the source.
	AcquireTimeout time.Duration

	// ChunkOverhead is the protocol bytes reserved out of each
	// notification payload.
	ChunkOverhead int

	// ChunkHardCap bounds the chunk size regardless of what the link
	// negotiated. Zero means no cap.
	ChunkHardCap int

	// StreamRate paces chunk sends, in bytes per second, so a slow
	// receiver can drain its buffers. Zero disables pacing.
	StreamRate float64

	// FailOnStoreError makes a storage failure fail the whole job.
	// By default a missing storage medium is logged and the transfer
	// goes ahead; the encoded image is still valid.
	FailOnStoreError bool
}

// Controller owns the single in-flight transfer job. One worker
// goroutine runs capture, encode and streaming end to end and is the
// only writer of job state; connection events from the wireless stack
// are queued and applied by the worker at its checkpoints.
type Controller struct {
	conf     Config
	source   frames.Source
	notifier Notifier
	store    Store
	session  *PeerSession
	clock    ratelimit.Clock
	log      *loglimiter.LogLimiter

	events   chan Event
	triggers chan struct{}
	stop     chan struct{}
	done     chan struct{}

	mu        sync.Mutex
	state     State
	reason    FailReason
	bytesSent uint32
	paused    bool
}

func New(conf Config, source frames.Source, notifier Notifier, store Store) *Controller {
	return NewWithClock(conf, source, notifier, store, realClock{})
}

func NewWithClock(conf Config, source frames.Source, notifier Notifier, store Store, clock ratelimit.Clock) *Controller {
	return &Controller{
		conf:     conf,
		source:   source,
		notifier: notifier,
		store:    store,
		session:  newPeerSession(),
		clock:    clock,
		log:      loglimiter.New(minLogInterval),
		events:   make(chan Event, 16),
		triggers: make(chan struct{}, 1),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the worker goroutine.
func (c *Controller) Start() {
	go c.run()
}

// Stop shuts the worker down and waits for it to finish. Stop must
// only be called once.
func (c *Controller) Stop() {
	close(c.stop)
	<-c.done
}

// Trigger requests a capture. It never blocks. A trigger is accepted
// only when no job is in flight; extra triggers while a job is active
// are silently dropped. A finished (Done or Failed) job is released
// by the next trigger.
func (c *Controller) Trigger() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.paused {
		return false
	}
	switch c.state {
	case Idle, Done, Failed:
	default:
		return false
	}

	c.state = Capturing
	c.reason = FailNone
	c.bytesSent = 0
	select {
	case c.triggers <- struct{}{}:
	default:
	}
	return true
}

// HandleCommand processes a peer write to the capture-trigger
// channel and reports whether it started a capture.
func (c *Controller) HandleCommand(data []byte) bool {
	if len(data) == 1 && data[0] == CmdStartCapture {
		return c.Trigger()
	}
	return false
}

// PublishEvent queues a connection state change for the worker. Safe
// to call from the wireless stack's callback context.
func (c *Controller) PublishEvent(ev Event) {
	select {
	case c.events <- ev:
	case <-c.stop:
	}
}

// Pause makes triggers fail fast without touching the sensor, until
// Resume.
func (c *Controller) Pause() {
	c.mu.Lock()
	c.paused = true
	c.mu.Unlock()
}

func (c *Controller) Resume() {
	c.mu.Lock()
	c.paused = false
	c.mu.Unlock()
}

// Status reports the job state, the most recent job's failure reason
// and how many image bytes it has sent.
func (c *Controller) Status() (State, FailReason, uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state, c.reason, c.bytesSent
}

func (c *Controller) run() {
	defer close(c.done)
	for {
		select {
		case <-c.stop:
			return
		case ev := <-c.events:
			c.session.apply(ev)
		case <-c.triggers:
			c.runJob()
		}
	}
}

func (c *Controller) runJob() {
	reason := c.job()

	c.mu.Lock()
	if reason == FailNone {
		c.state = Done
	} else {
		c.state = Failed
	}
	c.reason = reason
	c.mu.Unlock()

	if reason != FailNone {
		log.Printf("capture job failed: %s", reason)
	}
}

// job runs one capture end to end and returns FailNone on success.
// Each failure is terminal for the job; nothing is retried.
func (c *Controller) job() FailReason {
	frame, err := c.source.Acquire(c.conf.AcquireTimeout)
	if err != nil {
		c.log.Printf("frame acquire failed: %v", err)
		return acquireReason(err)
	}
	if err := frame.Check(); err != nil {
		log.Printf("bad frame from source: %v", err)
		return FailEncodeError
	}

	var buf bytes.Buffer
	buf.Grow(frame.Width*frame.Height*3 + 1024)
	if err := encoder.Encode(&buf, c.conf.Format, encoder.Rows(frame)); err != nil {
		log.Printf("encode failed: %v", err)
		return FailEncodeError
	}
	image := buf.Bytes()

	if c.store != nil {
		if name, err := c.store.Save(image, c.conf.Format); err != nil {
			if c.conf.FailOnStoreError {
				log.Printf("storing image failed: %v", err)
				return FailEncodeError
			}
			// A missing storage medium doesn't invalidate the image;
			// the transfer still goes ahead.
			c.log.Printf("storing image failed: %v", err)
		} else if name != "" {
			log.Printf("image stored: %s", name)
		}
	}

	c.setState(Announcing)
	c.drainEvents()
	if !c.session.Connected() || !c.session.SubscribedTo(MetadataChannel) {
		return FailNoSubscriber
	}
	rec := NewMetadataRecord(frame.Width, frame.Height, uint32(len(image)), c.conf.Format.Tag())
	if err := c.notifier.NotifyMetadata(rec); err != nil {
		c.log.Printf("metadata notify failed: %v", err)
		return FailTransferAborted
	}

	c.setState(Streaming)
	return c.streamImage(image)
}

// streamImage pushes the encoded bytes out in order. The chunk size
// is fixed once per job from the payload ceiling in force when
// streaming starts.
func (c *Controller) streamImage(image []byte) FailReason {
	chunkSize := int(c.session.MaxPayload()) - c.conf.ChunkOverhead
	if c.conf.ChunkHardCap > 0 && chunkSize > c.conf.ChunkHardCap {
		chunkSize = c.conf.ChunkHardCap
	}
	if chunkSize <= 0 {
		c.log.Printf("payload ceiling %d leaves no room for data", c.session.MaxPayload())
		return FailTransferAborted
	}

	var bucket *ratelimit.Bucket
	if c.conf.StreamRate > 0 {
		bucket = ratelimit.NewBucketWithRateAndClock(c.conf.StreamRate, int64(chunkSize), c.clock)
	}

	sent := 0
	for sent < len(image) {
		// A disconnect while streaming is observed here, before the
		// next send; a send against a torn-down channel fails too.
		c.drainEvents()
		if !c.session.Connected() || !c.session.SubscribedTo(DataChannel) {
			return FailTransferAborted
		}

		n := len(image) - sent
		if n > chunkSize {
			n = chunkSize
		}
		if err := c.notifier.NotifyData(image[sent : sent+n]); err != nil {
			c.log.Printf("chunk send failed: %v", err)
			return FailTransferAborted
		}
		sent += n
		c.addSent(uint32(n))

		if bucket != nil && sent < len(image) {
			bucket.Wait(int64(n))
		}
	}
	return FailNone
}

func (c *Controller) drainEvents() {
	for {
		select {
		case ev := <-c.events:
			c.session.apply(ev)
		default:
			return
		}
	}
}

func (c *Controller) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

func (c *Controller) addSent(n uint32) {
	c.mu.Lock()
	c.bytesSent += n
	c.mu.Unlock()
}

func acquireReason(err error) FailReason {
	switch err {
	case frames.ErrNoFrame:
		return FailNoFrame
	case frames.ErrUnsupportedFormat:
		return FailUnsupportedFormat
	}
	return FailSourceUnavailable
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) Sleep(d time.Duration) {
	time.Sleep(d)
}

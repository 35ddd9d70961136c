// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package dispatch provides the single execution context on which caller supplied
// callbacks are invoked, callbacks run one at a time in the order they were posted
package dispatch

import (
	"fmt"
	"sync"

	"github.com/choria-io/updater/model"
)

// DefaultQueueSize is the number of callbacks that can be queued before Post blocks
const DefaultQueueSize = 1024

var _ model.Delivery = (*Dispatcher)(nil)

// Dispatcher runs posted functions serially on its own goroutine
type Dispatcher struct {
	queue  chan func()
	done   chan struct{}
	log    model.Logger
	closed bool
	mu     sync.RWMutex
}

// New starts a dispatcher, a size of 0 or less uses DefaultQueueSize
func New(log model.Logger, size int) *Dispatcher {
	if size <= 0 {
		size = DefaultQueueSize
	}

	d := &Dispatcher{
		queue: make(chan func(), size),
		done:  make(chan struct{}),
		log:   log,
	}

	go d.loop()

	return d
}

// Post schedules f for execution, it returns false once the dispatcher is closed
func (d *Dispatcher) Post(f func()) bool {
	if f == nil {
		return false
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return false
	}

	d.queue <- f

	return true
}

// Close stops accepting new functions and waits for queued ones to complete, it must not be called from a posted function
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	<-d.done
}

// Done is closed once the dispatcher stopped and all queued functions ran
func (d *Dispatcher) Done() <-chan struct{} {
	return d.done
}

func (d *Dispatcher) loop() {
	defer close(d.done)

	for f := range d.queue {
		d.run(f)
	}
}

func (d *Dispatcher) run(f func()) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("Callback panicked", "error", fmt.Sprintf("%v", r))
		}
	}()

	f()
}

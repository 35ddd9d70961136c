// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package fetcher

import (
	"io"
	"sync"
	"sync/atomic"
)

// subscription observes the transfer and reports increasing completion fractions to notify
// until it is released, notify is never called with mu held
type subscription struct {
	notify   func(float64)
	received int64
	last     float64
	emitted  bool
	released atomic.Bool
	mu       sync.Mutex
}

func newSubscription(notify func(float64)) *subscription {
	return &subscription{notify: notify}
}

// reader wraps r so that reads update the subscription, a total of 0 or less means the size is not known
func (s *subscription) reader(r io.Reader, total int64) io.Reader {
	return &progressReader{r: r, total: total, sub: s}
}

func (s *subscription) release() {
	s.released.Store(true)
}

func (s *subscription) update(n int64, total int64) {
	fraction, ok := s.advance(n, total)
	if !ok || s.released.Load() {
		return
	}

	s.notify(fraction)
}

func (s *subscription) advance(n int64, total int64) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.received += n

	if s.released.Load() || total <= 0 {
		return 0, false
	}

	fraction := min(max(float64(s.received)/float64(total), 0), 1)
	if s.emitted && fraction <= s.last {
		return 0, false
	}

	s.emitted = true
	s.last = fraction

	return fraction, true
}

func (s *subscription) bytes() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.received
}

type progressReader struct {
	r     io.Reader
	total int64
	sub   *subscription
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.sub.update(int64(n), p.total)
	}

	return n, err
}

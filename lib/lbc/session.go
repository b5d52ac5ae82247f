package lbc

import (
	"context"
	"sync"
	"time"

	browser "github.com/EDDYCJY/fake-useragent"
	"github.com/mazen160/go-random"
)

// Identity is the (proxy, user agent) pair one request attempt goes out
// with. A nil Proxy means a direct connection.
type Identity struct {
	Proxy     *Proxy
	UserAgent string
}

type SessionOptions struct {
	Proxies    []Proxy
	UserAgents []string

	// MinDelay/MaxDelay bound the randomized spacing between two
	// consecutive requests. Zero MinDelay disables pacing.
	MinDelay time.Duration
	MaxDelay time.Duration
}

// Session is the shared anti-bot state: the proxy rotation cursor, the
// pacing clock and the request counter. One session is created at process
// start and injected into every client; all fields are guarded by a
// single mutex so rotation and rate-limit invariants hold under
// concurrent callers.
type Session struct {
	mu          sync.Mutex
	proxies     []Proxy
	cursor      int
	userAgents  []string
	lastRequest time.Time
	requests    int
	minDelay    time.Duration
	maxDelay    time.Duration
}

func NewSession(opts SessionOptions) *Session {
	maxDelay := opts.MaxDelay
	if maxDelay < opts.MinDelay {
		maxDelay = opts.MinDelay
	}
	return &Session{
		proxies:    opts.Proxies,
		userAgents: opts.UserAgents,
		minDelay:   opts.MinDelay,
		maxDelay:   maxDelay,
	}
}

// Acquire blocks until the rate gate opens, then hands out the next
// identity in rotation. Callers arriving concurrently serialize here;
// no request gets past the gate sooner than MinDelay after the previous
// one. The context aborts the wait.
func (s *Session) Acquire(ctx context.Context) (Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.gate(ctx); err != nil {
		return Identity{}, err
	}
	s.lastRequest = time.Now()
	s.requests++

	id := Identity{UserAgent: s.pickUserAgent()}
	if len(s.proxies) > 0 {
		proxy := s.proxies[s.cursor]
		s.cursor = (s.cursor + 1) % len(s.proxies)
		id.Proxy = &proxy
	}
	return id, nil
}

// Requests reports how many identities this session has handed out.
func (s *Session) Requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests
}

// gate sleeps out the remainder of the randomized inter-request delay.
// Called with the session mutex held.
func (s *Session) gate(ctx context.Context) error {
	if s.minDelay <= 0 || s.lastRequest.IsZero() {
		return nil
	}
	delay := s.minDelay + randomDuration(s.maxDelay-s.minDelay)
	remaining := time.Until(s.lastRequest.Add(delay))
	if remaining <= 0 {
		return nil
	}

	timer := time.NewTimer(remaining)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Session) pickUserAgent() string {
	if len(s.userAgents) == 0 {
		return browser.Random()
	}
	if len(s.userAgents) == 1 {
		return s.userAgents[0]
	}
	i, err := random.IntRange(0, len(s.userAgents))
	if err != nil {
		i = 0
	}
	return s.userAgents[i]
}

// randomDuration picks a uniform duration in [0, spread].
func randomDuration(spread time.Duration) time.Duration {
	ms := int(spread / time.Millisecond)
	if ms <= 0 {
		return 0
	}
	n, err := random.IntRange(0, ms)
	if err != nil {
		return 0
	}
	return time.Duration(n) * time.Millisecond
}

package resilience

import (
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitState string

const (
	CircuitStateClosed   CircuitState = "closed"
	CircuitStateOpen     CircuitState = "open"
	CircuitStateHalfOpen CircuitState = "half_open"
)

// StateChangeFunc observes transitions. It runs after the breaker lock is released.
type StateChangeFunc func(name string, from, to CircuitState)

type transition struct {
	from, to CircuitState
}

// CircuitBreaker guards one upstream. Closed counts consecutive failures; open rejects until
// the timeout passes; half-open admits a bounded number of probes and closes once they all
// succeed. All methods are safe on a nil receiver, which behaves as always closed.
type CircuitBreaker struct {
	name     string
	onChange StateChangeFunc
	cfg      CircuitBreakerConfig
	now      func() time.Time

	mu       sync.Mutex
	state    CircuitState
	failures int
	openedAt time.Time
	inFlight int
	passed   int
}

func NewCircuitBreaker(failureThreshold int, openTimeout time.Duration, halfOpenMaxReq int) *CircuitBreaker {
	return newBreaker("", NormalizeCircuitBreakerConfig(CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: failureThreshold,
		OpenTimeout:      openTimeout,
		HalfOpenMaxReq:   halfOpenMaxReq,
	}), nil)
}

func newBreaker(name string, cfg CircuitBreakerConfig, onChange StateChangeFunc) *CircuitBreaker {
	return &CircuitBreaker{
		name:     name,
		onChange: onChange,
		cfg:      cfg,
		now:      time.Now,
		state:    CircuitStateClosed,
	}
}

func (b *CircuitBreaker) Name() string {
	if b == nil {
		return ""
	}
	return b.name
}

// Allow returns ErrCircuitOpen while calls are rejected. Every nil return must be followed
// by RecordSuccess or RecordFailure.
func (b *CircuitBreaker) Allow() error {
	if b == nil {
		return nil
	}

	b.mu.Lock()
	changes := b.expire()
	var err error
	switch {
	case b.state == CircuitStateOpen:
		err = ErrCircuitOpen
	case b.state == CircuitStateHalfOpen && b.inFlight >= b.cfg.HalfOpenMaxReq:
		err = ErrCircuitOpen
	case b.state == CircuitStateHalfOpen:
		b.inFlight++
	}
	b.mu.Unlock()

	b.notify(changes)
	return err
}

func (b *CircuitBreaker) RecordSuccess() {
	if b == nil {
		return
	}

	b.mu.Lock()
	var changes []transition
	switch b.state {
	case CircuitStateClosed:
		b.failures = 0
	case CircuitStateHalfOpen:
		b.inFlight = max(b.inFlight-1, 0)
		b.passed++
		if b.passed >= b.cfg.HalfOpenMaxReq && b.inFlight == 0 {
			changes = b.moveTo(CircuitStateClosed)
		}
	}
	b.mu.Unlock()

	b.notify(changes)
}

func (b *CircuitBreaker) RecordFailure() {
	if b == nil {
		return
	}

	b.mu.Lock()
	var changes []transition
	switch b.state {
	case CircuitStateClosed:
		b.failures++
		if b.failures >= b.cfg.FailureThreshold {
			changes = b.moveTo(CircuitStateOpen)
		}
	case CircuitStateHalfOpen:
		changes = b.moveTo(CircuitStateOpen)
	case CircuitStateOpen:
		b.openedAt = b.now()
	}
	b.mu.Unlock()

	b.notify(changes)
}

// State reports the effective state; an open breaker past its timeout reads as half-open.
func (b *CircuitBreaker) State() CircuitState {
	if b == nil {
		return CircuitStateClosed
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == CircuitStateOpen && b.now().Sub(b.openedAt) >= b.cfg.OpenTimeout {
		return CircuitStateHalfOpen
	}
	return b.state
}

// expire moves an open breaker to half-open once the timeout has passed. Caller holds mu.
func (b *CircuitBreaker) expire() []transition {
	if b.state != CircuitStateOpen || b.now().Sub(b.openedAt) < b.cfg.OpenTimeout {
		return nil
	}
	return b.moveTo(CircuitStateHalfOpen)
}

// moveTo resets the counters for the new state. Caller holds mu.
func (b *CircuitBreaker) moveTo(to CircuitState) []transition {
	from := b.state
	b.state = to
	b.failures = 0
	b.inFlight = 0
	b.passed = 0
	b.openedAt = time.Time{}
	if to == CircuitStateOpen {
		b.openedAt = b.now()
	}
	if from == to {
		return nil
	}
	return []transition{{from: from, to: to}}
}

func (b *CircuitBreaker) notify(changes []transition) {
	if b.onChange == nil {
		return
	}
	for _, c := range changes {
		b.onChange(b.name, c.from, c.to)
	}
}

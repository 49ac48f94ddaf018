package httpclient

import (
	"sync"
	"time"
)

// CircuitState represents the state of a circuit breaker.
type CircuitState int

const (
	CircuitClosed CircuitState = iota
	CircuitOpen
	CircuitHalfOpen
)

func (s CircuitState) String() string {
	switch s {
	case CircuitClosed:
		return "closed"
	case CircuitOpen:
		return "open"
	case CircuitHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreaker implements the circuit breaker pattern. After a threshold
// of consecutive failures the circuit opens and requests fail fast; after
// the reset timeout a limited number of half-open probes decide whether
// the circuit closes again.
type CircuitBreaker struct {
	mu           sync.Mutex
	state        CircuitState
	failures     int
	halfOpenUsed int
	openedAt     time.Time

	threshold   int
	timeout     time.Duration
	halfOpenMax int
}

// NewCircuitBreaker creates a circuit breaker in the closed state.
func NewCircuitBreaker(threshold int, timeout time.Duration, halfOpenMax int) *CircuitBreaker {
	if threshold <= 0 {
		threshold = DefaultCircuitThreshold
	}
	if timeout <= 0 {
		timeout = DefaultCircuitTimeout
	}
	if halfOpenMax <= 0 {
		halfOpenMax = DefaultCircuitHalfOpenMax
	}
	return &CircuitBreaker{
		threshold:   threshold,
		timeout:     timeout,
		halfOpenMax: halfOpenMax,
	}
}

// Allow reports whether a request may proceed, transitioning the breaker
// from open to half-open once the reset timeout has elapsed.
func (cb *CircuitBreaker) Allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case CircuitClosed:
		return true
	case CircuitOpen:
		if time.Since(cb.openedAt) >= cb.timeout {
			cb.state = CircuitHalfOpen
			cb.halfOpenUsed = 1
			return true
		}
		return false
	case CircuitHalfOpen:
		if cb.halfOpenUsed < cb.halfOpenMax {
			cb.halfOpenUsed++
			return true
		}
		return false
	default:
		return false
	}
}

// RecordSuccess notes a successful request, closing the circuit from half-open.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failures = 0
	if cb.state == CircuitHalfOpen {
		cb.state = CircuitClosed
		cb.halfOpenUsed = 0
	}
}

// RecordFailure notes a failed request, opening the circuit when the
// failure threshold is reached or a half-open probe fails.
func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failures++

	switch cb.state {
	case CircuitClosed:
		if cb.failures >= cb.threshold {
			cb.state = CircuitOpen
			cb.openedAt = time.Now()
		}
	case CircuitHalfOpen:
		cb.state = CircuitOpen
		cb.openedAt = time.Now()
		cb.halfOpenUsed = 0
	}
}

// State returns the current state of the breaker.
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// Reset returns the breaker to the closed state with no recorded failures.
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.state = CircuitClosed
	cb.failures = 0
	cb.halfOpenUsed = 0
}

// BreakerManager hands out shared circuit breakers by name, so every client
// talking to the same upstream shares one failure history.
type BreakerManager struct {
	mu       sync.Mutex
	breakers map[string]*CircuitBreaker

	threshold   int
	timeout     time.Duration
	halfOpenMax int
}

// NewBreakerManager creates a manager whose breakers use the given settings.
func NewBreakerManager(threshold int, timeout time.Duration, halfOpenMax int) *BreakerManager {
	return &BreakerManager{
		breakers:    make(map[string]*CircuitBreaker),
		threshold:   threshold,
		timeout:     timeout,
		halfOpenMax: halfOpenMax,
	}
}

// DefaultManager is the process-wide breaker manager.
var DefaultManager = NewBreakerManager(DefaultCircuitThreshold, DefaultCircuitTimeout, DefaultCircuitHalfOpenMax)

// GetOrCreate returns the breaker registered under name, creating it on
// first use. Multiple calls with the same name return the same instance.
func (m *BreakerManager) GetOrCreate(name string) *CircuitBreaker {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cb, ok := m.breakers[name]; ok {
		return cb
	}
	cb := NewCircuitBreaker(m.threshold, m.timeout, m.halfOpenMax)
	m.breakers[name] = cb
	return cb
}

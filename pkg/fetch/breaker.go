package fetch

import (
	"fmt"
	"sync"
	"time"

	"github.com/sony/gobreaker"
)

// Breakers holds one circuit breaker per upstream source family, so a
// misbehaving FNA deployment can trip open without affecting DNA or
// GNMS-Ping traffic.
type Breakers struct {
	mu       sync.Mutex
	breakers map[SourceFamily]*gobreaker.CircuitBreaker
}

func NewBreakers() *Breakers {
	return &Breakers{breakers: make(map[SourceFamily]*gobreaker.CircuitBreaker)}
}

func (b *Breakers) get(source SourceFamily) *gobreaker.CircuitBreaker {
	b.mu.Lock()
	defer b.mu.Unlock()
	if cb, ok := b.breakers[source]; ok {
		return cb
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        string(source),
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	b.breakers[source] = cb
	return cb
}

// Execute runs fn through the breaker for source, wrapping a trip into a
// plain error the caller records as a CollectionError.
func (b *Breakers) Execute(source SourceFamily, fn func() (string, error)) (string, error) {
	cb := b.get(source)
	result, err := cb.Execute(func() (any, error) {
		return fn()
	})
	if err != nil {
		if err == gobreaker.ErrOpenState {
			return "", fmt.Errorf("%s circuit open: upstream unavailable", source)
		}
		return "", err
	}
	return result.(string), nil
}

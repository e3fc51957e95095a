package application

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// UserLimiter limite le nombre de soumissions par utilisateur.
type UserLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	every    time.Duration
	burst    int
}

// NewUserLimiter autorise burst soumissions, puis une toutes les every.
func NewUserLimiter(every time.Duration, burst int) *UserLimiter {
	return &UserLimiter{
		limiters: make(map[string]*rate.Limiter),
		every:    every,
		burst:    burst,
	}
}

// Allow consomme un jeton pour userID. Un limiteur nil laisse tout passer.
func (l *UserLimiter) Allow(userID string) bool {
	if l == nil {
		return true
	}
	l.mu.Lock()
	lim, ok := l.limiters[userID]
	if !ok {
		lim = rate.NewLimiter(rate.Every(l.every), l.burst)
		l.limiters[userID] = lim
	}
	l.mu.Unlock()
	return lim.Allow()
}

package entities

import "time"

// AfkNotice annonce une absence.
type AfkNotice struct {
	UserID string
	Name   string
	Hours  float64
	Reason string
	Start  time.Time
	End    time.Time
}

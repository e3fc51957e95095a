package domain

import (
	"regexp"
	"strconv"
	"time"
)

// MusterTimeLayout est le format de saisie de l'heure d'un rassemblement.
const MusterTimeLayout = "02.01.2006 15:04"

var musterTimePattern = regexp.MustCompile(`^(\d{2})\.(\d{2})\.(\d{4})\s(\d{2}):(\d{2})$`)

// ParseMusterTime lit "JJ.MM.AAAA HH:MM" dans loc. Les bornes de chaque champ
// sont vérifiées, ainsi que l'existence de la date (pas de 31.02).
func ParseMusterTime(s string, loc *time.Location) (time.Time, error) {
	m := musterTimePattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, ErrInvalidDateTime
	}
	parts := make([]int, 5)
	for i := range parts {
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return time.Time{}, ErrInvalidDateTime
		}
		parts[i] = n
	}
	day, month, year, hour, minute := parts[0], parts[1], parts[2], parts[3], parts[4]
	if day < 1 || day > 31 || month < 1 || month > 12 || hour > 23 || minute > 59 {
		return time.Time{}, ErrInvalidDateTime
	}
	if loc == nil {
		loc = time.Local
	}
	t := time.Date(year, time.Month(month), day, hour, minute, 0, 0, loc)
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, ErrInvalidDateTime
	}
	return t, nil
}

var clockPattern = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):([0-5][0-9])$`)

// ValidClock vérifie une heure HH:MM (l'heure peut tenir sur un chiffre).
func ValidClock(s string) bool {
	return clockPattern.MatchString(s)
}

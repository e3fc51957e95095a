package discord

import (
	"fmt"
	"time"

	"musterbot/internal/domain"
)

// FormatMusterTime rend t dans loc au format de saisie (JJ.MM.AAAA HH:MM).
func FormatMusterTime(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(domain.MusterTimeLayout)
}

// Timestamp rend un horodatage Discord affiché dans le fuseau du lecteur.
// style : "F" (date complète), "R" (relatif), "t" (heure courte)...
func Timestamp(t time.Time, style string) string {
	return fmt.Sprintf("<t:%d:%s>", t.Unix(), style)
}

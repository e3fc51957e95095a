package entities

import (
	"slices"
	"time"

	"musterbot/internal/domain/roster"
)

// Muster est un rassemblement planifié avec sa liste principale et sa réserve.
type Muster struct {
	ID          string // clé opaque (id du message qui l'affiche)
	Name        string
	CreatorID   string
	CreatorName string
	ScheduledAt time.Time
	Slots       int
	GuildID     string
	ChannelID   string
	ThreadID    string // vide si aucun fil n'a été créé
	Primary     []roster.Entry
	Overflow    []roster.Entry
	CreatedAt   time.Time
}

// IsExpired est vrai une fois l'heure prévue strictement dépassée.
func (m *Muster) IsExpired(now time.Time) bool {
	return now.After(m.ScheduledAt)
}

// Clone renvoie une copie indépendante (les listes sont dupliquées).
func (m *Muster) Clone() *Muster {
	c := *m
	c.Primary = slices.Clone(m.Primary)
	c.Overflow = slices.Clone(m.Overflow)
	return &c
}

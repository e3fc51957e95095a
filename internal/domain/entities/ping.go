package entities

import "time"

// PingKind est le type d'un groupe d'appels.
type PingKind string

const (
	PingWorkshop PingKind = "workshop"
	PingSupply   PingKind = "supply"
	PingDrop     PingKind = "drop"
	PingDealers  PingKind = "dealers"
	PingCustom   PingKind = "custom"
)

// PingKinds liste les types dans l'ordre du panneau.
var PingKinds = []PingKind{PingWorkshop, PingSupply, PingDrop, PingDealers, PingCustom}

// PingGroup est une salve d'appels envoyée pour une activité.
type PingGroup struct {
	ID        string
	Kind      PingKind
	Title     string // nom affiché ("Цеха", ou le nom saisi pour custom)
	Time      string // HH:MM
	CreatorID string
	ChannelID string
	CreatedAt time.Time
	DeleteAt  time.Time
}

// PingMessage est un message d'appel à supprimer à DeleteAt.
type PingMessage struct {
	ID        int64
	GroupID   string
	MessageID string
	ChannelID string
	Kind      PingKind
	CreatorID string
	CreatedAt time.Time
	DeleteAt  time.Time
}

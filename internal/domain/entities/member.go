package entities

import "time"

// Member est un membre du serveur connu du registre.
type Member struct {
	ID          string
	DisplayName string
	GameStatic  string
	UpdatedAt   time.Time
}

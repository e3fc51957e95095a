package tz

import (
	"fmt"
	"time"
)

// Default est le fuseau des rassemblements quand TIMEZONE n'est pas défini.
const Default = "Europe/Moscow"

// Load charge le fuseau name (Default si vide).
func Load(name string) (*time.Location, error) {
	if name == "" {
		name = Default
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("tz: load %s: %w", name, err)
	}
	return loc, nil
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Group is a named permission bundle that accounts can be added to.
type Group struct {
	ID        uuid.UUID // UUIDv7
	Name      string    // unique
	CreatedAt time.Time
}

func (g *Group) String() string {
	return g.Name
}

package models

import (
	"time"

	"github.com/google/uuid"
)

type Session struct {
	ID              uuid.UUID
	Role            Role
	LastUserMessage string
	HasLastMessage  bool
	UpdatedAt       time.Time
}

package ids

import (
	"github.com/google/uuid"
)

// NewTaskID returns the first 16 bits of a fresh random UUID as a task id.
func NewTaskID() int16 {
	return fromUUID(uuid.New())
}

func fromUUID(u uuid.UUID) int16 {
	return int16(uint16(u[0])<<8 | uint16(u[1]))
}

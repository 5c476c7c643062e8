package models

import (
	"fmt"
	"strings"
)

// RoomType defines the kind of a room
type RoomType string

const (
	RoomClassroom  RoomType = "classroom"
	RoomLab        RoomType = "lab"
	RoomOffice     RoomType = "office"
	RoomConference RoomType = "conference"
	RoomLibrary    RoomType = "library"
	RoomAuditorium RoomType = "auditorium"
	RoomOther      RoomType = "other"
)

// Valid reports whether the room type is one of the known kinds.
func (t RoomType) Valid() bool {
	switch t {
	case RoomClassroom, RoomLab, RoomOffice, RoomConference, RoomLibrary, RoomAuditorium, RoomOther:
		return true
	}
	return false
}

// Block represents a campus building block that owns rooms
type Block struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Room represents a schedulable room inside a block
type Room struct {
	ID         int64    `json:"id"`
	Number     string   `json:"room_number"`
	Name       *string  `json:"name,omitempty"`
	Type       RoomType `json:"type"`
	Capacity   *int     `json:"capacity,omitempty"`
	Facilities []string `json:"facilities"`
	Available  bool     `json:"is_available"`
	BlockID    int64    `json:"block_id"`
	Block      *Block   `json:"block,omitempty"`
}

// Validate checks the invariants a room record must satisfy at the boundary.
func (r *Room) Validate() error {
	if strings.TrimSpace(r.Number) == "" {
		return fmt.Errorf("room number cannot be empty")
	}
	if r.Type != "" && !r.Type.Valid() {
		return fmt.Errorf("unknown room type %q", r.Type)
	}
	if r.Capacity != nil && *r.Capacity <= 0 {
		return fmt.Errorf("capacity must be positive")
	}
	return nil
}

// ValidateForCreate applies the stricter invariants for a create request.
func (r *Room) ValidateForCreate() error {
	if err := r.Validate(); err != nil {
		return err
	}
	if r.BlockID <= 0 {
		return fmt.Errorf("block reference is required")
	}
	return nil
}

// HasFacilities reports whether the room carries every facility in want.
func (r *Room) HasFacilities(want []string) bool {
	for _, w := range want {
		found := false
		for _, f := range r.Facilities {
			if f == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

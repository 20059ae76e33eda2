package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Common relation types. RelationType itself is free-form; these are the
// values the frontend offers by default.
const (
	RelationLeibbursch = "LEIBBURSCH"
	RelationMentor     = "MENTOR"
	RelationSponsor    = "SPONSOR"
	RelationPeer       = "PEER"
)

// ErrSelfConnection is returned by the persistence guard when both endpoints
// are the same profile.
var ErrSelfConnection = errors.New("a connection cannot link a profile to itself")

// Connection is a directed, typed edge between two member profiles, e.g. a
// Leibbursch-Leibfuchs relationship flowing from mentor to mentee.
type Connection struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	FromProfileID uint     `gorm:"index;not null" json:"from_profile_id"`
	FromProfile   *Profile `gorm:"foreignKey:FromProfileID" json:"-"`
	ToProfileID   uint     `gorm:"index;not null" json:"to_profile_id"`
	ToProfile     *Profile `gorm:"foreignKey:ToProfileID" json:"-"`

	RelationType string `gorm:"index;size:50;not null" json:"relation_type"`

	StartDate   *Date  `json:"start_date,omitempty"`
	EndDate     *Date  `json:"end_date,omitempty"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	// Bidirectional marks relations that are symmetric in meaning (peer
	// connections); the stored direction is then arbitrary.
	Bidirectional bool `gorm:"not null;default:false" json:"bidirectional"`

	CreatedByID *uint `json:"created_by_id,omitempty"`
	UpdatedByID *uint `json:"updated_by_id,omitempty"`
}

// BeforeSave is the last-resort guard against self-referential edges; the
// service rejects them earlier with a client-visible validation error.
func (c *Connection) BeforeSave(*gorm.DB) error {
	if c.FromProfileID != 0 && c.FromProfileID == c.ToProfileID {
		return ErrSelfConnection
	}
	return nil
}

// IsActive reports whether the connection has no end date or ends strictly
// after today. Computed, never stored.
func (c *Connection) IsActive() bool {
	return c.EndDate == nil || c.EndDate.After(Today().Time)
}

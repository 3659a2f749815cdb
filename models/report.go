package models

import "time"

type Report struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time  `json:"-"`
	UpdatedAt time.Time  `json:"-"`
	Name      string     `gorm:"not null" json:"name"`
	Date      time.Time  `json:"date"`
	RemovedAt *time.Time `json:"-"`

	RecipientID uint  `gorm:"not null;index" json:"-"`
	Recipient   *User `gorm:"foreignKey:RecipientID" json:"-"`
}

// Removed reports whether the report carries a tombstone.
func (r *Report) Removed() bool {
	return r.RemovedAt != nil
}

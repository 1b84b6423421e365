// Package staffrepo provides the staff directory used to resolve the
// actors recorded in order histories.
package staffrepo

import (
	"github.com/google/uuid"
)

// StaffDTO represents the database structure for staff members.
type StaffDTO struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string
	Role string `gorm:"type:varchar(16);index"`
}

// TableName specifies the database table name for staff members.
func (StaffDTO) TableName() string {
	return "staff"
}

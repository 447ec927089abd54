package models

import "time"

// MachineAssignment -> penempatan satu mesin ke satu proyek.
// ReturnDate nil selama assignment masih aktif.
type MachineAssignment struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	MachineID  uint       `gorm:"not null;index" json:"machine_id"`
	Machine    Machine    `gorm:"foreignKey:MachineID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"machine,omitempty"`
	ProjectID  uint       `gorm:"not null;index" json:"project_id"`
	Project    Project    `gorm:"foreignKey:ProjectID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"project,omitempty"`
	AssignDate time.Time  `gorm:"not null" json:"assign_date"`
	ReturnDate *time.Time `json:"return_date"`
	AssignedBy string     `gorm:"type:varchar(100)" json:"assigned_by"`
	Notes      string     `gorm:"type:text" json:"notes"`
	CreatedAt  time.Time  `gorm:"not null" json:"created_at"`
}

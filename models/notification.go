package models

import "time"

// Notification -> pengingat maintenance yang akan jatuh tempo,
// atau pesan broadcast manual dari admin.
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MachineID *uint     `gorm:"index" json:"machine_id,omitempty"`
	Machine   *Machine  `gorm:"foreignKey:MachineID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"machine,omitempty"`
	Title     string    `gorm:"type:varchar(100)" json:"title"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

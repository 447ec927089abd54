package models

import "time"

// Status mesin. Status di-update oleh assignment/maintenance flow,
// tapi user juga bisa set langsung lewat update machine.
const (
	MachineAvailable   = "available"
	MachineInUse       = "in_use"
	MachineMaintenance = "maintenance"
	MachineBroken      = "broken"
)

type Machine struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Code          string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"code"`
	Name          string     `gorm:"type:varchar(255);not null" json:"name"`
	Category      string     `gorm:"type:varchar(100)" json:"category"`
	Manufacturer  string     `gorm:"type:varchar(255)" json:"manufacturer"`
	Model         string     `gorm:"type:varchar(255)" json:"model"`
	SerialNumber  string     `gorm:"type:varchar(255)" json:"serial_number"`
	PurchaseDate  *time.Time `json:"purchase_date"`
	PurchasePrice float64    `gorm:"type:decimal(15,2)" json:"purchase_price"`
	Status        string     `gorm:"type:varchar(50);not null;default:'available'" json:"status"`
	Description   string     `gorm:"type:text" json:"description"`
	CreatedAt     time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"not null" json:"updated_at"`
}

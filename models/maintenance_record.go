package models

import "time"

// Tipe maintenance. Preventive dan repair membawa mesin ke status
// maintenance, inspection tidak menyentuh status.
const (
	MaintenancePreventive = "preventive"
	MaintenanceRepair     = "repair"
	MaintenanceInspection = "inspection"
)

type MaintenanceRecord struct {
	ID                  uint       `gorm:"primaryKey" json:"id"`
	RecordNumber        string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"record_number"`
	MachineID           uint       `gorm:"not null;index" json:"machine_id"`
	Machine             Machine    `gorm:"foreignKey:MachineID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"machine,omitempty"`
	ProjectID           *uint      `gorm:"index" json:"project_id"`
	Project             *Project   `gorm:"foreignKey:ProjectID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"project,omitempty"`
	SupplierID          *uint      `gorm:"index" json:"supplier_id"`
	Supplier            *Supplier  `gorm:"foreignKey:SupplierID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"supplier,omitempty"`
	MaintenanceDate     time.Time  `gorm:"not null" json:"maintenance_date"`
	MaintenanceType     string     `gorm:"type:varchar(50)" json:"maintenance_type"`
	Cost                float64    `gorm:"type:decimal(15,2);default:0" json:"cost"`
	Description         string     `gorm:"type:text" json:"description"`
	NextMaintenanceDate *time.Time `json:"next_maintenance_date"`
	PerformedBy         string     `gorm:"type:varchar(255)" json:"performed_by"`
	CreatedBy           string     `gorm:"type:varchar(100)" json:"created_by"`
	CreatedAt           time.Time  `gorm:"not null" json:"created_at"`
}

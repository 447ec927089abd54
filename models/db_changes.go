package models

import "time"

// DBChange diisi oleh trigger database setiap kali baris
// machines/machine_assignments/maintenance_records berubah,
// lalu dibaca oleh change monitor untuk broadcast websocket.
type DBChange struct {
	ID         uint      `gorm:"primaryKey"`
	TableName  string    `gorm:"type:varchar(50);not null;index:idx_table_action"`
	RecordID   int64     `gorm:"not null"`
	ActionType string    `gorm:"type:varchar(10);not null;index:idx_table_action"` // INSERT, UPDATE, DELETE
	ChangedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	Processed  bool      `gorm:"default:false;index:idx_processed"`
}

package services

import (
	"log"
	"time"

	"github.com/yeremiapane/fleet-app/events"
	"github.com/yeremiapane/fleet-app/models"
	"gorm.io/gorm"
)

// ChangeMonitor membaca change feed (db_changes, diisi trigger postgres)
// dan menerjemahkannya ke broadcast websocket. Dengan begitu perubahan
// yang masuk di luar API (mis. migrasi, koreksi manual) tetap sampai
// ke dashboard.
type ChangeMonitor struct {
	DB       *gorm.DB
	StopChan chan struct{}
	Interval time.Duration
}

func NewChangeMonitor(db *gorm.DB) *ChangeMonitor {
	return &ChangeMonitor{
		DB:       db,
		StopChan: make(chan struct{}),
		Interval: 1 * time.Second,
	}
}

func (cm *ChangeMonitor) Start() {
	go func() {
		ticker := time.NewTicker(cm.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				cm.checkChanges()
			case <-cm.StopChan:
				return
			}
		}
	}()
}

func (cm *ChangeMonitor) Stop() {
	close(cm.StopChan)
}

func (cm *ChangeMonitor) checkChanges() {
	var changes []models.DBChange

	tx := cm.DB.Begin()

	if err := tx.Where("processed = ?", false).
		Order("changed_at ASC").
		Limit(100).
		Find(&changes).Error; err != nil {
		tx.Rollback()
		log.Printf("Error fetching changes: %v", err)
		return
	}

	for _, change := range changes {
		switch change.TableName {
		case "machines":
			cm.processMachineChange(change)
		case "machine_assignments":
			cm.processAssignmentChange(change)
		case "maintenance_records":
			cm.processMaintenanceChange(change)
		}

		if err := tx.Model(&models.DBChange{}).
			Where("id = ?", change.ID).
			Update("processed", true).Error; err != nil {
			tx.Rollback()
			log.Printf("Error marking change as processed: %v", err)
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		log.Printf("Error committing change batch: %v", err)
		tx.Rollback()
		return
	}

	if len(changes) > 0 {
		log.Printf("Processed %d fleet changes", len(changes))
	}
}

func (cm *ChangeMonitor) processMachineChange(change models.DBChange) {
	if change.ActionType == "DELETE" {
		events.BroadcastMachineDelete(uint(change.RecordID))
		return
	}

	var machine models.Machine
	if err := cm.DB.First(&machine, change.RecordID).Error; err != nil {
		log.Printf("Error fetching machine %d: %v", change.RecordID, err)
		return
	}
	events.BroadcastMachineUpdate(machine)
}

func (cm *ChangeMonitor) processAssignmentChange(change models.DBChange) {
	if change.ActionType == "DELETE" {
		return
	}

	var assignment models.MachineAssignment
	if err := cm.DB.First(&assignment, change.RecordID).Error; err != nil {
		log.Printf("Error fetching assignment %d: %v", change.RecordID, err)
		return
	}
	events.BroadcastAssignmentUpdate(assignment)
}

func (cm *ChangeMonitor) processMaintenanceChange(change models.DBChange) {
	if change.ActionType == "DELETE" {
		return
	}

	var record models.MaintenanceRecord
	if err := cm.DB.First(&record, change.RecordID).Error; err != nil {
		log.Printf("Error fetching maintenance record %d: %v", change.RecordID, err)
		return
	}
	events.BroadcastMaintenanceUpdate(record)
}

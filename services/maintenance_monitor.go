package services

import (
	"fmt"
	"log"
	"time"

	"github.com/yeremiapane/fleet-app/events"
	"github.com/yeremiapane/fleet-app/models"
	"gorm.io/gorm"
)

// MaintenanceMonitor memantau next_maintenance_date dan membuat
// notifikasi untuk mesin yang jadwalnya jatuh dalam window ke depan.
type MaintenanceMonitor struct {
	db       *gorm.DB
	interval time.Duration
	window   time.Duration
	stopChan chan struct{}
}

func NewMaintenanceMonitor(db *gorm.DB) *MaintenanceMonitor {
	return &MaintenanceMonitor{
		db:       db,
		interval: 1 * time.Hour,
		window:   7 * 24 * time.Hour,
		stopChan: make(chan struct{}),
	}
}

// Start memulai goroutine pemantau jadwal maintenance
func (mm *MaintenanceMonitor) Start() {
	go func() {
		ticker := time.NewTicker(mm.interval)
		defer ticker.Stop()

		// Jalankan sekali di awal supaya reminder tidak menunggu tick pertama
		mm.CheckDueMaintenance()

		for {
			select {
			case <-ticker.C:
				mm.CheckDueMaintenance()
			case <-mm.stopChan:
				return
			}
		}
	}()
	log.Println("Maintenance monitor started")
}

func (mm *MaintenanceMonitor) Stop() {
	close(mm.stopChan)
}

// CheckDueMaintenance membuat satu notifikasi per mesin per jadwal.
// Dedup lewat isi message: jadwal yang sama tidak dibuatkan
// notifikasi kedua.
func (mm *MaintenanceMonitor) CheckDueMaintenance() {
	now := time.Now()
	until := now.Add(mm.window)

	var records []models.MaintenanceRecord
	if err := mm.db.Preload("Machine").
		Where("next_maintenance_date IS NOT NULL AND next_maintenance_date BETWEEN ? AND ?", now, until).
		Find(&records).Error; err != nil {
		log.Printf("Error scanning maintenance schedule: %v", err)
		return
	}

	for _, record := range records {
		machineID := record.MachineID
		message := fmt.Sprintf("Machine %s (%s) is due for maintenance on %s",
			record.Machine.Name, record.Machine.Code,
			record.NextMaintenanceDate.Format("2006-01-02"))

		var count int64
		if err := mm.db.Model(&models.Notification{}).
			Where("machine_id = ? AND message = ?", machineID, message).
			Count(&count).Error; err != nil {
			log.Printf("Error checking existing notification: %v", err)
			continue
		}
		if count > 0 {
			continue
		}

		notif := models.Notification{
			MachineID: &machineID,
			Title:     "Maintenance due",
			Message:   message,
		}
		if err := mm.db.Create(&notif).Error; err != nil {
			log.Printf("Error creating maintenance notification: %v", err)
			continue
		}

		events.BroadcastNotification(notif)
		log.Printf("Maintenance reminder created for machine %s", record.Machine.Code)
	}
}

package database

import (
	"os"
	"strings"

	"github.com/yeremiapane/fleet-app/utils"
	"gorm.io/gorm"
)

// ExecuteTriggers memasang trigger change-log di postgres.
// Di sqlite (development/test) trigger dilewati, change feed
// tidak tersedia di mode itu.
func ExecuteTriggers(db *gorm.DB) error {
	if db.Dialector.Name() != "postgres" {
		utils.InfoLogger.Printf("Skipping change-log triggers for dialect %s", db.Dialector.Name())
		return nil
	}

	triggerSQL, err := os.ReadFile("database/migrations/triggers.sql")
	if err != nil {
		return err
	}

	// File dipisah per statement dengan marker, karena body function
	// plpgsql mengandung semicolon
	for _, stmt := range strings.Split(string(triggerSQL), "-- ----") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}

		if err := db.Exec(stmt).Error; err != nil {
			utils.ErrorLogger.Printf("Error executing trigger statement: %v\nStatement: %s", err, stmt)
			continue
		}
	}

	// Verifikasi trigger yang terpasang
	var triggers []struct {
		TriggerName string
		EventType   string
		TableName   string
	}

	db.Raw(`
        SELECT
            trigger_name,
            event_manipulation AS event_type,
            event_object_table AS table_name
        FROM information_schema.triggers
        WHERE trigger_schema NOT IN ('pg_catalog', 'information_schema')
    `).Scan(&triggers)

	for _, t := range triggers {
		utils.InfoLogger.Printf("Trigger verified: %s (%s on %s)", t.TriggerName, t.EventType, t.TableName)
	}

	return nil
}

package config

import (
	"fmt"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// InitDB membuka koneksi database sesuai DB_DRIVER.
// Default postgres; sqlite dipakai untuk development lokal.
// TranslateError diaktifkan supaya controller bisa membedakan
// not found / duplicate key / FK violation dari driver manapun.
func InitDB() (*gorm.DB, error) {
	gormCfg := &gorm.Config{TranslateError: true}

	if os.Getenv("DB_DRIVER") == "sqlite" {
		path := envOrDefault("SQLITE_PATH", "fleet.db")
		return gorm.Open(sqlite.Open(path+"?_foreign_keys=on"), gormCfg)
	}

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		envOrDefault("DB_HOST", "localhost"),
		envOrDefault("DB_PORT", "5432"),
		envOrDefault("DB_USER", "postgres"),
		os.Getenv("DB_PASSWORD"),
		envOrDefault("DB_NAME", "fleet_management"),
		envOrDefault("DB_SSLMODE", "disable"),
	)
	return gorm.Open(postgres.Open(dsn), gormCfg)
}

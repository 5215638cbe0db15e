package model

import "time"

// SchemaVersion has one row per applied migration; the highest version is the
// store's current schema version.
type SchemaVersion struct {
	Version   int       `gorm:"primaryKey"`
	AppliedAt time.Time `gorm:"not null"`
}

func (SchemaVersion) TableName() string {
	return "schema_versions"
}

package database

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LastRefresh returns the timestamp of the last dataset load. When the
// metadata record is missing it falls back to the most recent movement
// date across all cases. Returns nil when neither is available.
func LastRefresh(db *gorm.DB) (*time.Time, error) {
	var meta Metadata
	err := db.Where("clave = ?", MetadataLastRefresh).First(&meta).Error
	if err == nil {
		if t, parseErr := time.Parse(time.RFC3339, meta.Value); parseErr == nil {
			return &t, nil
		}
		if t, parseErr := time.Parse("2006-01-02 15:04:05", meta.Value); parseErr == nil {
			return &t, nil
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var newest Case
	err = db.Where("fecha_ultimo_movimiento IS NOT NULL").
		Order("fecha_ultimo_movimiento DESC").
		First(&newest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return newest.LastMovement, nil
}

// SetLastRefresh records the given time as the last dataset load.
func SetLastRefresh(db *gorm.DB, t time.Time) error {
	meta := Metadata{
		Key:   MetadataLastRefresh,
		Value: t.Format(time.RFC3339),
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "clave"}},
		DoUpdates: clause.AssignmentColumns([]string{"valor"}),
	}).Create(&meta).Error
}

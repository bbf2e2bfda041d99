package database

import "gorm.io/gorm"

// createIndexes creates indexes that AutoMigrate does not derive from
// the model tags. All statements are idempotent.
func createIndexes(db *gorm.DB) error {
	statements := []string{
		"CREATE INDEX IF NOT EXISTS idx_expediente_estado ON expediente (estado_procesal)",
		"CREATE INDEX IF NOT EXISTS idx_expediente_ano ON expediente (ano_inicio)",
		"CREATE INDEX IF NOT EXISTS idx_expediente_tribunal ON expediente (tribunal)",
		"CREATE INDEX IF NOT EXISTS idx_parte_expediente ON parte (numero_expediente)",
		"CREATE INDEX IF NOT EXISTS idx_rol_parte_expediente ON rol_parte (numero_expediente)",
		"CREATE INDEX IF NOT EXISTS idx_rol_parte_nombre ON rol_parte (nombre)",
	}
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

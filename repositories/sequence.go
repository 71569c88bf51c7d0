package repositories

import (
	"fmt"

	"gorm.io/gorm"
)

// SyncSequence menyamakan sequence postgres dengan MAX(id) setelah insert
// dengan ID eksplisit. Driver lain tidak perlu.
func SyncSequence(db *gorm.DB, table string) error {
	if db.Dialector.Name() != "postgres" {
		return nil
	}
	sql := fmt.Sprintf("SELECT setval(pg_get_serial_sequence('%s', 'id'), COALESCE((SELECT MAX(id) FROM %s), 1))", table, table)
	return db.Exec(sql).Error
}

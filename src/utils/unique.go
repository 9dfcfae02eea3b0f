package utils

import (
	"dropzone/src/models/scopes"

	"gorm.io/gorm"
)

// ensureUnique reports msg on field when another row of model already holds
// value in column. excludeID skips the row being updated.
func ensureUnique(tx *gorm.DB, model any, column string, value string, excludeID uint, msg string) error {
	var count int64
	err := tx.
		Model(model).
		Where(column+" = ?", value).
		Scopes(scopes.ExcludeID(excludeID)).
		Count(&count).
		Error
	if err != nil {
		return err
	}
	if count > 0 {
		fields := FieldErrors{}
		fields.Add(column, msg)
		return fields.Err()
	}
	return nil
}

package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/catalog-backend/pkg/slug"
)

// uniqueSlug derives a slug from name that is free in table, ignoring the row
// identified by self. It runs on the hook's connection so the check sees the
// surrounding transaction.
func uniqueSlug(tx *gorm.DB, table, name string, self uuid.UUID) (string, error) {
	conn := tx.Session(&gorm.Session{NewDB: true})
	return slug.Unique(slug.MakeOrFallback(name), func(candidate string) (bool, error) {
		q := conn.Table(table).Where("slug = ?", candidate)
		if self != uuid.Nil {
			q = q.Where("id <> ?", self)
		}
		var n int64
		if err := q.Count(&n).Error; err != nil {
			return false, err
		}
		return n > 0, nil
	})
}

package models

import (
	"gorm.io/gorm"
)

// InitTable migrates the schema and installs the partial unique index that
// limits each article to a single live draft. The index cannot be expressed
// in struct tags: it must ignore soft-deleted rows so a discarded draft does
// not block the next one.
func InitTable(db *gorm.DB) error {
	err := db.AutoMigrate(
		&User{},
		&Language{},
		&Article{},
		&ArticleVersion{},
		&TranslationGroup{},
		&TranslationMembership{},
		&Tag{},
	)
	if err != nil {
		return err
	}

	return db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_article_versions_live_draft
		 ON article_versions (article_id)
		 WHERE is_draft AND deleted_at IS NULL`,
	).Error
}

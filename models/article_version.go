package models

import (
	"time"

	"gorm.io/gorm"
)

// ArticleVersion is a full snapshot of an article's editable fields.
// A draft row may be edited in place until it is published; published rows
// are immutable history. Version numbers only move forward: a discarded
// draft is soft deleted and its number stays consumed.
type ArticleVersion struct {
	ID            uint           `json:"id" gorm:"primarykey"`
	ArticleID     uint           `json:"article_id" gorm:"not null;uniqueIndex:uq_article_versions_number"`
	Article       *Article       `json:"article,omitempty" gorm:"foreignKey:ArticleID"`
	VersionNumber int            `json:"version_number" gorm:"not null;uniqueIndex:uq_article_versions_number"`
	IsDraft       bool           `json:"is_draft" gorm:"not null;default:false"`
	Title         string         `json:"title"`
	Content       string         `json:"content" gorm:"type:text"`
	Tags          []string       `json:"tags" gorm:"type:text;serializer:json"`
	IsPublic      bool           `json:"is_public" gorm:"default:false"`
	WeightScore   float64        `json:"weight_score" gorm:"default:0"`
	PublishedAt   *time.Time     `json:"published_at"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
}

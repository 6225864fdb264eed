package models

import (
	"time"

	"gorm.io/gorm"
)

// Article is the public projection of a knowledge-base entry. Once the
// article has been published at least once, its editable fields mirror the
// live published version and change only through publish or rollback.
type Article struct {
	ID                 uint             `json:"id" gorm:"primarykey"`
	AuthorID           uint             `json:"author_id"`
	Author             *User            `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Title              string           `json:"title" gorm:"not null"`
	Content            string           `json:"content" gorm:"type:text"`
	Tags               []string         `json:"tags" gorm:"type:text;serializer:json"`
	IsPublic           bool             `json:"is_public" gorm:"default:false"`
	WeightScore        float64          `json:"weight_score" gorm:"default:0"`
	ViewCount          int              `json:"view_count" gorm:"default:0"`
	HelpfulVotes       int              `json:"helpful_votes" gorm:"default:0"`
	UnhelpfulVotes     int              `json:"unhelpful_votes" gorm:"default:0"`
	PublishedVersionID *uint            `json:"published_version_id"`
	PublishedVersion   *ArticleVersion  `json:"published_version,omitempty" gorm:"foreignKey:PublishedVersionID"`
	Versions           []ArticleVersion `json:"versions,omitempty" gorm:"foreignKey:ArticleID"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
	DeletedAt          gorm.DeletedAt   `json:"-" gorm:"index"`
}

package models

import "time"

// TranslationGroup ties together the articles that are translations of one
// logical piece of content. It carries no content of its own and is deleted
// when its last membership is removed.
type TranslationGroup struct {
	ID        uint                    `json:"id" gorm:"primarykey"`
	Members   []TranslationMembership `json:"members,omitempty" gorm:"foreignKey:GroupID"`
	CreatedAt time.Time               `json:"created_at"`
}

// TranslationMembership links an article into a group under one language.
// Memberships are hard deleted so the unique indexes keep enforcing one
// language per group and one group per article.
type TranslationMembership struct {
	ID           uint      `json:"id" gorm:"primarykey"`
	ArticleID    uint      `json:"article_id" gorm:"not null;uniqueIndex"`
	Article      *Article  `json:"article,omitempty" gorm:"foreignKey:ArticleID"`
	GroupID      uint      `json:"group_id" gorm:"not null;uniqueIndex:uq_translation_memberships_group_language"`
	LanguageCode string    `json:"language_code" gorm:"not null;size:16;uniqueIndex:uq_translation_memberships_group_language"`
	CreatedAt    time.Time `json:"created_at"`
}

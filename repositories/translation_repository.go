package repositories

import (
	"gorm.io/gorm"

	"kb-cms/models"
)

type TranslationRepository interface {
	WithTx(tx *gorm.DB) TranslationRepository
	CreateGroup(group *models.TranslationGroup) error
	GetGroup(id uint) (*models.TranslationGroup, error)
	DeleteGroup(id uint) error
	CreateMembership(membership *models.TranslationMembership) error
	DeleteMembership(id uint) error
	GetMembershipByArticle(articleID uint) (*models.TranslationMembership, error)
	GetMembershipByGroupAndLanguage(groupID uint, languageCode string) (*models.TranslationMembership, error)
	ListMembers(groupID uint) ([]models.TranslationMembership, error)
	CountMembers(groupID uint) (int64, error)
	CountMembershipsByLanguage(code string) (int64, error)
}

type translationRepository struct {
	db *gorm.DB
}

func NewTranslationRepository(db *gorm.DB) TranslationRepository {
	return &translationRepository{db: db}
}

func (r *translationRepository) WithTx(tx *gorm.DB) TranslationRepository {
	return &translationRepository{db: tx}
}

func (r *translationRepository) CreateGroup(group *models.TranslationGroup) error {
	return r.db.Create(group).Error
}

func (r *translationRepository) GetGroup(id uint) (*models.TranslationGroup, error) {
	var group models.TranslationGroup
	err := r.db.First(&group, id).Error
	return &group, err
}

func (r *translationRepository) DeleteGroup(id uint) error {
	return r.db.Delete(&models.TranslationGroup{}, id).Error
}

func (r *translationRepository) CreateMembership(membership *models.TranslationMembership) error {
	return r.db.Create(membership).Error
}

func (r *translationRepository) DeleteMembership(id uint) error {
	return r.db.Delete(&models.TranslationMembership{}, id).Error
}

func (r *translationRepository) GetMembershipByArticle(articleID uint) (*models.TranslationMembership, error) {
	var membership models.TranslationMembership
	err := r.db.Where("article_id = ?", articleID).First(&membership).Error
	return &membership, err
}

func (r *translationRepository) GetMembershipByGroupAndLanguage(groupID uint, languageCode string) (*models.TranslationMembership, error) {
	var membership models.TranslationMembership
	err := r.db.Where("group_id = ? AND language_code = ?", groupID, languageCode).
		First(&membership).Error
	return &membership, err
}

func (r *translationRepository) ListMembers(groupID uint) ([]models.TranslationMembership, error) {
	var memberships []models.TranslationMembership
	err := r.db.Where("group_id = ?", groupID).
		Preload("Article").
		Order("language_code asc").
		Find(&memberships).Error
	return memberships, err
}

func (r *translationRepository) CountMembers(groupID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.TranslationMembership{}).
		Where("group_id = ?", groupID).
		Count(&count).Error
	return count, err
}

func (r *translationRepository) CountMembershipsByLanguage(code string) (int64, error) {
	var count int64
	err := r.db.Model(&models.TranslationMembership{}).
		Where("language_code = ?", code).
		Count(&count).Error
	return count, err
}

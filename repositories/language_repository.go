package repositories

import (
	"gorm.io/gorm"

	"kb-cms/models"
)

type LanguageRepository interface {
	Create(language *models.Language) error
	GetByID(id uint) (*models.Language, error)
	GetByCode(code string) (*models.Language, error)
	List(includeInactive bool) ([]models.Language, error)
	Update(language *models.Language) error
	Delete(id uint) error
}

type languageRepository struct {
	db *gorm.DB
}

func NewLanguageRepository(db *gorm.DB) LanguageRepository {
	return &languageRepository{db: db}
}

func (r *languageRepository) Create(language *models.Language) error {
	return r.db.Create(language).Error
}

func (r *languageRepository) GetByID(id uint) (*models.Language, error) {
	var language models.Language
	err := r.db.First(&language, id).Error
	return &language, err
}

func (r *languageRepository) GetByCode(code string) (*models.Language, error) {
	var language models.Language
	err := r.db.Where("code = ?", code).First(&language).Error
	return &language, err
}

func (r *languageRepository) List(includeInactive bool) ([]models.Language, error) {
	var languages []models.Language
	query := r.db.Order("code asc")
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}
	err := query.Find(&languages).Error
	return languages, err
}

func (r *languageRepository) Update(language *models.Language) error {
	return r.db.Save(language).Error
}

func (r *languageRepository) Delete(id uint) error {
	return r.db.Delete(&models.Language{}, id).Error
}

package services

import (
	"errors"

	"gorm.io/gorm"

	"kb-cms/models"
	"kb-cms/permissions"
	"kb-cms/repositories"
)

type LanguageService interface {
	CreateLanguage(req models.CreateLanguageRequest, role models.UserRole) (*models.Language, error)
	UpdateLanguage(id uint, req models.UpdateLanguageRequest, role models.UserRole) (*models.Language, error)
	DeleteLanguage(id uint, role models.UserRole) error
	GetLanguages(includeInactive bool) ([]models.Language, error)
	GetLanguage(id uint) (*models.Language, error)
}

type languageService struct {
	languageRepo    repositories.LanguageRepository
	translationRepo repositories.TranslationRepository
}

func NewLanguageService(languageRepo repositories.LanguageRepository, translationRepo repositories.TranslationRepository) LanguageService {
	return &languageService{
		languageRepo:    languageRepo,
		translationRepo: translationRepo,
	}
}

func (s *languageService) CreateLanguage(req models.CreateLanguageRequest, role models.UserRole) (*models.Language, error) {
	if err := permissions.Check(role, permissions.OpManageTranslations); err != nil {
		return nil, err
	}

	if _, err := s.languageRepo.GetByCode(req.Code); err == nil {
		return nil, models.NewErrorConflict("language %s already exists", req.Code)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	language := &models.Language{
		Code:     req.Code,
		Name:     req.Name,
		IsActive: true,
	}
	if req.IsActive != nil {
		language.IsActive = *req.IsActive
	}

	if err := s.languageRepo.Create(language); err != nil {
		return nil, err
	}
	return language, nil
}

func (s *languageService) UpdateLanguage(id uint, req models.UpdateLanguageRequest, role models.UserRole) (*models.Language, error) {
	if err := permissions.Check(role, permissions.OpManageTranslations); err != nil {
		return nil, err
	}

	language, err := s.languageRepo.GetByID(id)
	if err != nil {
		return nil, notFoundOr(err, "language %d not found", id)
	}

	if req.Name != nil {
		language.Name = *req.Name
	}
	if req.IsActive != nil {
		language.IsActive = *req.IsActive
	}

	if err := s.languageRepo.Update(language); err != nil {
		return nil, err
	}
	return language, nil
}

// DeleteLanguage removes a language that no translation group references.
// Deactivating is the way to retire a language still in use.
func (s *languageService) DeleteLanguage(id uint, role models.UserRole) error {
	if err := permissions.Check(role, permissions.OpManageTranslations); err != nil {
		return err
	}

	language, err := s.languageRepo.GetByID(id)
	if err != nil {
		return notFoundOr(err, "language %d not found", id)
	}

	inUse, err := s.translationRepo.CountMembershipsByLanguage(language.Code)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return models.NewErrorConflict(
			"language %s is used by %d translation membership(s)", language.Code, inUse)
	}

	return s.languageRepo.Delete(id)
}

func (s *languageService) GetLanguages(includeInactive bool) ([]models.Language, error) {
	return s.languageRepo.List(includeInactive)
}

func (s *languageService) GetLanguage(id uint) (*models.Language, error) {
	language, err := s.languageRepo.GetByID(id)
	if err != nil {
		return nil, notFoundOr(err, "language %d not found", id)
	}
	return language, nil
}

package services

import (
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"kb-cms/models"
	"kb-cms/permissions"
	"kb-cms/repositories"
)

type TagService interface {
	CreateTag(req models.CreateTagRequest, role models.UserRole) (*models.Tag, error)
	GetTags() ([]models.Tag, error)
	GetTag(id uint) (*models.Tag, error)
}

type tagService struct {
	tagRepo     repositories.TagRepository
	articleRepo repositories.ArticleRepository
}

func NewTagService(tagRepo repositories.TagRepository, articleRepo repositories.ArticleRepository) TagService {
	return &tagService{
		tagRepo:     tagRepo,
		articleRepo: articleRepo,
	}
}

func (s *tagService) CreateTag(req models.CreateTagRequest, role models.UserRole) (*models.Tag, error) {
	if err := permissions.Check(role, permissions.OpManageTags); err != nil {
		return nil, err
	}

	if _, err := s.tagRepo.GetByName(req.Name); err == nil {
		return nil, models.NewErrorConflict("tag %s already exists", req.Name)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tag := &models.Tag{Name: req.Name}
	if err := s.tagRepo.Create(tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *tagService) GetTags() ([]models.Tag, error) {
	return s.tagRepo.GetAll()
}

func (s *tagService) GetTag(id uint) (*models.Tag, error) {
	tag, err := s.tagRepo.GetByID(id)
	if err != nil {
		return nil, notFoundOr(err, "tag %d not found", id)
	}
	return tag, nil
}

// ensureTags makes sure a tag row exists for every name a version uses.
// Runs inside the mutating transaction; an insert race surfaces as a write
// conflict and the retry finds the winner's row.
func ensureTags(tagRepo repositories.TagRepository, names []string) error {
	for _, name := range names {
		_, err := tagRepo.GetByName(name)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := tagRepo.Create(&models.Tag{Name: name}); err != nil {
			return err
		}
	}
	return nil
}

// refreshTagUsageCounts recomputes how many live published articles carry
// each tag. Runs after the mutating transaction commits; a failure only
// leaves counts stale until the next mutation.
func refreshTagUsageCounts(tagRepo repositories.TagRepository, articleRepo repositories.ArticleRepository) {
	tags, err := tagRepo.GetAll()
	if err != nil {
		slog.Warn("tags: refresh usage counts", "error", err)
		return
	}

	changed := make([]models.Tag, 0, len(tags))
	for i := range tags {
		count, err := articleRepo.CountWithTag(tags[i].Name)
		if err != nil {
			slog.Warn("tags: count usage", "tag", tags[i].Name, "error", err)
			return
		}
		if tags[i].UsageCount != int(count) {
			tags[i].UsageCount = int(count)
			changed = append(changed, tags[i])
		}
	}

	if len(changed) > 0 {
		if err := tagRepo.BulkUpdate(changed); err != nil {
			slog.Warn("tags: update usage counts", "error", err)
		}
	}
}

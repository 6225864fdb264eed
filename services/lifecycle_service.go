package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"kb-cms/models"
	"kb-cms/permissions"
	"kb-cms/repositories"
	"kb-cms/search"
)

// VersionLifecycleService manages the draft, publish and rollback flow of
// article versions. Each mutation runs in a single transaction under the
// article row lock, so an article never carries more than one open draft
// and version numbers are never reused.
type VersionLifecycleService interface {
	CreateDraft(articleID uint, role models.UserRole) (*models.ArticleVersion, error)
	UpdateDraft(articleID uint, number int, req models.UpdateDraftRequest, role models.UserRole) (*models.ArticleVersion, error)
	GetDraft(articleID uint, role models.UserRole) (*models.ArticleVersion, error)
	Publish(articleID uint, number int, role models.UserRole) (*models.ArticleVersion, error)
	Rollback(articleID uint, targetNumber int, role models.UserRole) (*models.ArticleVersion, error)
	DiscardDraft(articleID uint, number int, role models.UserRole) error
	ListVersions(articleID uint, role models.UserRole) ([]models.ArticleVersion, error)
	ListPublicVersions(articleID uint) ([]models.ArticleVersion, error)
	GetVersion(articleID uint, number int, role models.UserRole) (*models.ArticleVersion, error)
}

type versionLifecycleService struct {
	db          *gorm.DB
	articleRepo repositories.ArticleRepository
	versionRepo repositories.ArticleVersionRepository
	tagRepo     repositories.TagRepository
	indexer     search.Indexer
}

func NewVersionLifecycleService(
	db *gorm.DB,
	articleRepo repositories.ArticleRepository,
	versionRepo repositories.ArticleVersionRepository,
	tagRepo repositories.TagRepository,
	indexer search.Indexer,
) VersionLifecycleService {
	return &versionLifecycleService{
		db:          db,
		articleRepo: articleRepo,
		versionRepo: versionRepo,
		tagRepo:     tagRepo,
		indexer:     indexer,
	}
}

func (s *versionLifecycleService) CreateDraft(articleID uint, role models.UserRole) (*models.ArticleVersion, error) {
	if err := permissions.Check(role, permissions.OpManageVersions); err != nil {
		return nil, err
	}

	var draft *models.ArticleVersion
	err := repositories.RunInTransaction(s.db, func(tx *gorm.DB) error {
		article, err := s.articleRepo.WithTx(tx).GetForUpdate(articleID)
		if err != nil {
			return notFoundOr(err, "article %d not found", articleID)
		}

		// Seed from the live published snapshot; a never published
		// article starts from empty defaults.
		var seed *models.ArticleVersion
		if article.PublishedVersionID != nil {
			published, err := s.versionRepo.WithTx(tx).GetByID(*article.PublishedVersionID)
			if err != nil {
				return err
			}
			seed = published
		}

		created, err := newDraftLocked(tx, s.versionRepo, article, seed)
		if err != nil {
			return err
		}
		draft = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return draft, nil
}

func (s *versionLifecycleService) UpdateDraft(articleID uint, number int, req models.UpdateDraftRequest, role models.UserRole) (*models.ArticleVersion, error) {
	if err := permissions.Check(role, permissions.OpManageVersions); err != nil {
		return nil, err
	}

	var updated *models.ArticleVersion
	err := repositories.RunInTransaction(s.db, func(tx *gorm.DB) error {
		if _, err := s.articleRepo.WithTx(tx).GetForUpdate(articleID); err != nil {
			return notFoundOr(err, "article %d not found", articleID)
		}

		versions := s.versionRepo.WithTx(tx)
		draft, err := versions.GetDraft(articleID)
		if err != nil {
			return notFoundOr(err, "article %d has no open draft", articleID)
		}
		if draft.VersionNumber != number {
			return models.NewErrorNotFound("version %d of article %d is not the open draft", number, articleID)
		}

		applyVersionUpdate(draft, req)

		if err := ensureTags(s.tagRepo.WithTx(tx), draft.Tags); err != nil {
			return err
		}
		if err := versions.Update(draft); err != nil {
			return err
		}
		updated = draft
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *versionLifecycleService) GetDraft(articleID uint, role models.UserRole) (*models.ArticleVersion, error) {
	if err := permissions.Check(role, permissions.OpManageVersions); err != nil {
		return nil, err
	}

	if _, err := s.articleRepo.GetByID(articleID); err != nil {
		return nil, notFoundOr(err, "article %d not found", articleID)
	}

	draft, err := s.versionRepo.GetDraft(articleID)
	if err != nil {
		return nil, notFoundOr(err, "article %d has no open draft", articleID)
	}
	return draft, nil
}

func (s *versionLifecycleService) Publish(articleID uint, number int, role models.UserRole) (*models.ArticleVersion, error) {
	if err := permissions.Check(role, permissions.OpManageVersions); err != nil {
		return nil, err
	}

	var published *models.ArticleVersion
	err := repositories.RunInTransaction(s.db, func(tx *gorm.DB) error {
		article, err := s.articleRepo.WithTx(tx).GetForUpdate(articleID)
		if err != nil {
			return notFoundOr(err, "article %d not found", articleID)
		}

		draft, err := s.versionRepo.WithTx(tx).GetDraft(articleID)
		if err != nil {
			return notFoundOr(err, "article %d has no open draft", articleID)
		}
		if draft.VersionNumber != number {
			return models.NewErrorNotFound("version %d of article %d is not the open draft", number, articleID)
		}

		if err := s.publishLocked(tx, article, draft); err != nil {
			return err
		}
		published = draft
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.afterArticleChange(articleID)
	return published, nil
}

// Rollback restores a previously published snapshot as a brand new version
// and publishes it immediately. History stays append only: the target keeps
// its number and the restored copy gets the next one.
func (s *versionLifecycleService) Rollback(articleID uint, targetNumber int, role models.UserRole) (*models.ArticleVersion, error) {
	if err := permissions.Check(role, permissions.OpManageVersions); err != nil {
		return nil, err
	}

	var restored *models.ArticleVersion
	err := repositories.RunInTransaction(s.db, func(tx *gorm.DB) error {
		article, err := s.articleRepo.WithTx(tx).GetForUpdate(articleID)
		if err != nil {
			return notFoundOr(err, "article %d not found", articleID)
		}

		versions := s.versionRepo.WithTx(tx)

		if draft, err := versions.GetDraft(articleID); err == nil {
			return models.NewErrorConflict(
				"article %d has an open draft (version %d); discard or publish it before rolling back",
				articleID, draft.VersionNumber)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		target, err := versions.GetPublishedByNumber(articleID, targetNumber)
		if err != nil {
			return notFoundOr(err, "article %d has no published version %d", articleID, targetNumber)
		}

		number, err := versions.NextVersionNumber(articleID)
		if err != nil {
			return err
		}

		candidate := &models.ArticleVersion{
			ArticleID:     articleID,
			VersionNumber: number,
			Title:         target.Title,
			Content:       target.Content,
			Tags:          target.Tags,
			IsPublic:      target.IsPublic,
			WeightScore:   target.WeightScore,
		}
		if err := versions.Create(candidate); err != nil {
			return err
		}

		if err := s.publishLocked(tx, article, candidate); err != nil {
			return err
		}
		restored = candidate
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.afterArticleChange(articleID)
	return restored, nil
}

func (s *versionLifecycleService) DiscardDraft(articleID uint, number int, role models.UserRole) error {
	if err := permissions.Check(role, permissions.OpManageVersions); err != nil {
		return err
	}

	return repositories.RunInTransaction(s.db, func(tx *gorm.DB) error {
		if _, err := s.articleRepo.WithTx(tx).GetForUpdate(articleID); err != nil {
			return notFoundOr(err, "article %d not found", articleID)
		}

		versions := s.versionRepo.WithTx(tx)
		draft, err := versions.GetDraft(articleID)
		if err != nil {
			return notFoundOr(err, "article %d has no open draft", articleID)
		}
		if draft.VersionNumber != number {
			return models.NewErrorNotFound("version %d of article %d is not the open draft", number, articleID)
		}

		return versions.Discard(draft)
	})
}

// ListVersions returns the article's history in ascending order. The open
// draft is included only for callers who may manage versions.
func (s *versionLifecycleService) ListVersions(articleID uint, role models.UserRole) ([]models.ArticleVersion, error) {
	if _, err := s.articleRepo.GetByID(articleID); err != nil {
		return nil, notFoundOr(err, "article %d not found", articleID)
	}

	includeDrafts := permissions.Allowed(role, permissions.OpManageVersions)
	return s.versionRepo.List(articleID, includeDrafts)
}

// ListPublicVersions returns the published history of a public article,
// hiding non-public articles behind a not-found.
func (s *versionLifecycleService) ListPublicVersions(articleID uint) ([]models.ArticleVersion, error) {
	article, err := s.articleRepo.GetByID(articleID)
	if err != nil {
		return nil, notFoundOr(err, "article %d not found", articleID)
	}
	if !article.IsPublic || article.PublishedVersionID == nil {
		return nil, models.NewErrorNotFound("article %d not found", articleID)
	}
	return s.versionRepo.List(articleID, false)
}

func (s *versionLifecycleService) GetVersion(articleID uint, number int, role models.UserRole) (*models.ArticleVersion, error) {
	if _, err := s.articleRepo.GetByID(articleID); err != nil {
		return nil, notFoundOr(err, "article %d not found", articleID)
	}

	version, err := s.versionRepo.GetPublishedByNumber(articleID, number)
	if err == nil {
		return version, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// The number may belong to the open draft, visible only to version
	// managers.
	if permissions.Allowed(role, permissions.OpManageVersions) {
		draft, derr := s.versionRepo.GetDraft(articleID)
		if derr == nil && draft.VersionNumber == number {
			return draft, nil
		}
	}
	return nil, models.NewErrorNotFound("article %d has no version %d", articleID, number)
}

// publishLocked makes version the live published snapshot and mirrors it
// onto the article projection. The caller must hold the article row lock.
func (s *versionLifecycleService) publishLocked(tx *gorm.DB, article *models.Article, version *models.ArticleVersion) error {
	now := time.Now()
	version.IsDraft = false
	version.PublishedAt = &now

	if err := ensureTags(s.tagRepo.WithTx(tx), version.Tags); err != nil {
		return err
	}
	if err := s.versionRepo.WithTx(tx).Update(version); err != nil {
		return err
	}

	mirrorProjection(article, version)
	return s.articleRepo.WithTx(tx).Update(article)
}

func (s *versionLifecycleService) afterArticleChange(articleID uint) {
	s.indexer.NotifyArticleChanged(articleID)
	refreshTagUsageCounts(s.tagRepo, s.articleRepo)
}

// newDraftLocked allocates the next version number and inserts a draft for
// an article whose row lock the caller holds. seed supplies the snapshot
// fields; a nil seed means empty defaults.
func newDraftLocked(tx *gorm.DB, versionRepo repositories.ArticleVersionRepository, article *models.Article, seed *models.ArticleVersion) (*models.ArticleVersion, error) {
	versions := versionRepo.WithTx(tx)

	if existing, err := versions.GetDraft(article.ID); err == nil {
		return nil, models.NewErrorConflict(
			"article %d already has an open draft (version %d)",
			article.ID, existing.VersionNumber)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	number, err := versions.NextVersionNumber(article.ID)
	if err != nil {
		return nil, err
	}

	draft := &models.ArticleVersion{
		ArticleID:     article.ID,
		VersionNumber: number,
		IsDraft:       true,
	}
	if seed != nil {
		draft.Title = seed.Title
		draft.Content = seed.Content
		draft.Tags = seed.Tags
		draft.IsPublic = seed.IsPublic
		draft.WeightScore = seed.WeightScore
	}

	if err := versions.Create(draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// applyVersionUpdate copies the set fields of a partial update onto a
// version snapshot.
func applyVersionUpdate(version *models.ArticleVersion, req models.UpdateDraftRequest) {
	if req.Title != nil {
		version.Title = *req.Title
	}
	if req.Content != nil {
		version.Content = *req.Content
	}
	if req.Tags != nil {
		version.Tags = req.Tags
	}
	if req.IsPublic != nil {
		version.IsPublic = *req.IsPublic
	}
	if req.WeightScore != nil {
		version.WeightScore = *req.WeightScore
	}
}

// mirrorProjection copies the live snapshot fields onto the article row.
func mirrorProjection(article *models.Article, version *models.ArticleVersion) {
	article.Title = version.Title
	article.Content = version.Content
	article.Tags = version.Tags
	article.IsPublic = version.IsPublic
	article.WeightScore = version.WeightScore
	article.PublishedVersionID = &version.ID
}

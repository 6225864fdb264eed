package services

import (
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"kb-cms/models"
	"kb-cms/permissions"
	"kb-cms/repositories"
	"kb-cms/search"
)

type ArticleService interface {
	CreateArticle(req models.CreateArticleRequest, userID uint, role models.UserRole) (*models.Article, error)
	UpdateArticle(id uint, req models.UpdateArticleRequest, role models.UserRole) (*models.Article, error)
	DeleteArticle(id uint, role models.UserRole) error
	GetArticle(id uint, publicOnly bool) (*models.Article, error)
	GetArticles(params models.ArticleListParams, publicOnly bool) ([]models.Article, int64, error)
	SubmitFeedback(id uint, helpful bool) error
}

type articleService struct {
	db              *gorm.DB
	articleRepo     repositories.ArticleRepository
	versionRepo     repositories.ArticleVersionRepository
	tagRepo         repositories.TagRepository
	translationRepo repositories.TranslationRepository
	indexer         search.Indexer
}

func NewArticleService(
	db *gorm.DB,
	articleRepo repositories.ArticleRepository,
	versionRepo repositories.ArticleVersionRepository,
	tagRepo repositories.TagRepository,
	translationRepo repositories.TranslationRepository,
	indexer search.Indexer,
) ArticleService {
	return &articleService{
		db:              db,
		articleRepo:     articleRepo,
		versionRepo:     versionRepo,
		tagRepo:         tagRepo,
		translationRepo: translationRepo,
		indexer:         indexer,
	}
}

// CreateArticle stores a new article and publishes its content immediately
// as version 1.
func (s *articleService) CreateArticle(req models.CreateArticleRequest, userID uint, role models.UserRole) (*models.Article, error) {
	if err := permissions.Check(role, permissions.OpEditArticle(false)); err != nil {
		return nil, err
	}
	if req.IsPublic {
		if err := permissions.Check(role, permissions.OpTogglePublic); err != nil {
			return nil, err
		}
	}

	var created *models.Article
	err := repositories.RunInTransaction(s.db, func(tx *gorm.DB) error {
		articles := s.articleRepo.WithTx(tx)
		versions := s.versionRepo.WithTx(tx)

		article := &models.Article{
			AuthorID:    userID,
			Title:       req.Title,
			Content:     req.Content,
			Tags:        req.Tags,
			IsPublic:    req.IsPublic,
			WeightScore: req.WeightScore,
		}
		if err := articles.Create(article); err != nil {
			return err
		}

		now := time.Now()
		version := &models.ArticleVersion{
			ArticleID:     article.ID,
			VersionNumber: 1,
			Title:         req.Title,
			Content:       req.Content,
			Tags:          req.Tags,
			IsPublic:      req.IsPublic,
			WeightScore:   req.WeightScore,
			PublishedAt:   &now,
		}
		if err := ensureTags(s.tagRepo.WithTx(tx), req.Tags); err != nil {
			return err
		}
		if err := versions.Create(version); err != nil {
			return err
		}

		article.PublishedVersionID = &version.ID
		if err := articles.Update(article); err != nil {
			return err
		}

		created = article
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.afterChange(created.ID)
	return s.articleRepo.GetByID(created.ID)
}

// UpdateArticle applies a direct edit: the previous live content stays in
// history and the change is published as a brand new version. An open draft
// is untouched.
func (s *articleService) UpdateArticle(id uint, req models.UpdateArticleRequest, role models.UserRole) (*models.Article, error) {
	err := repositories.RunInTransaction(s.db, func(tx *gorm.DB) error {
		articles := s.articleRepo.WithTx(tx)
		versions := s.versionRepo.WithTx(tx)

		article, err := articles.GetForUpdate(id)
		if err != nil {
			return notFoundOr(err, "article %d not found", id)
		}

		// The gate depends on the article's current visibility, so it
		// runs after the row is locked.
		if err := permissions.Check(role, permissions.OpEditArticle(article.IsPublic)); err != nil {
			return err
		}
		if req.IsPublic != nil && *req.IsPublic != article.IsPublic {
			if err := permissions.Check(role, permissions.OpTogglePublic); err != nil {
				return err
			}
		}

		number, err := versions.NextVersionNumber(id)
		if err != nil {
			return err
		}

		now := time.Now()
		version := &models.ArticleVersion{
			ArticleID:     id,
			VersionNumber: number,
			Title:         article.Title,
			Content:       article.Content,
			Tags:          article.Tags,
			IsPublic:      article.IsPublic,
			WeightScore:   article.WeightScore,
			PublishedAt:   &now,
		}
		applyVersionUpdate(version, models.UpdateDraftRequest(req))

		if err := ensureTags(s.tagRepo.WithTx(tx), version.Tags); err != nil {
			return err
		}
		if err := versions.Create(version); err != nil {
			return err
		}

		mirrorProjection(article, version)
		return articles.Update(article)
	})
	if err != nil {
		return nil, err
	}

	s.afterChange(id)
	return s.articleRepo.GetByID(id)
}

func (s *articleService) DeleteArticle(id uint, role models.UserRole) error {
	if err := permissions.Check(role, permissions.OpDeleteArticle); err != nil {
		return err
	}

	err := repositories.RunInTransaction(s.db, func(tx *gorm.DB) error {
		articles := s.articleRepo.WithTx(tx)
		translations := s.translationRepo.WithTx(tx)

		article, err := articles.GetForUpdate(id)
		if err != nil {
			return notFoundOr(err, "article %d not found", id)
		}

		// Leaving the translation group frees the language slot right
		// away, even though the article row is only soft deleted.
		if membership, err := translations.GetMembershipByArticle(article.ID); err == nil {
			if err := translations.DeleteMembership(membership.ID); err != nil {
				return err
			}
			remaining, err := translations.CountMembers(membership.GroupID)
			if err != nil {
				return err
			}
			if remaining == 0 {
				if err := translations.DeleteGroup(membership.GroupID); err != nil {
					return err
				}
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		return articles.Delete(article.ID)
	})
	if err != nil {
		return err
	}

	s.indexer.NotifyArticleDeleted(id)
	refreshTagUsageCounts(s.tagRepo, s.articleRepo)
	return nil
}

// GetArticle loads an article. Public callers only see public articles that
// have a live published version; anything else reads as not found.
func (s *articleService) GetArticle(id uint, publicOnly bool) (*models.Article, error) {
	article, err := s.articleRepo.GetByID(id)
	if err != nil {
		return nil, notFoundOr(err, "article %d not found", id)
	}

	if publicOnly {
		if !article.IsPublic || article.PublishedVersionID == nil {
			return nil, models.NewErrorNotFound("article %d not found", id)
		}
		if err := s.articleRepo.IncrementViewCount(id); err != nil {
			slog.Warn("articles: increment view count", "article_id", id, "error", err)
		} else {
			article.ViewCount++
		}
	}

	return article, nil
}

func (s *articleService) GetArticles(params models.ArticleListParams, publicOnly bool) ([]models.Article, int64, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 {
		params.Limit = 10
	}
	return s.articleRepo.GetList(params, publicOnly)
}

func (s *articleService) SubmitFeedback(id uint, helpful bool) error {
	article, err := s.articleRepo.GetByID(id)
	if err != nil {
		return notFoundOr(err, "article %d not found", id)
	}
	if !article.IsPublic || article.PublishedVersionID == nil {
		return models.NewErrorNotFound("article %d not found", id)
	}

	if err := s.articleRepo.AddFeedback(id, helpful); err != nil {
		return notFoundOr(err, "article %d not found", id)
	}
	return nil
}

func (s *articleService) afterChange(articleID uint) {
	s.indexer.NotifyArticleChanged(articleID)
	refreshTagUsageCounts(s.tagRepo, s.articleRepo)
}

package services

import (
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"kb-cms/models"
	"kb-cms/permissions"
	"kb-cms/repositories"
	"kb-cms/translator"
)

// TranslationService maintains the grouping of articles into translation
// sets: one group per logical document, at most one article per language.
type TranslationService interface {
	Attach(req models.AttachTranslationRequest, role models.UserRole) (*models.TranslationMembership, error)
	Detach(articleID uint, role models.UserRole) error
	ListSiblings(articleID uint) ([]models.TranslationMembership, error)
}

type translationService struct {
	db              *gorm.DB
	articleRepo     repositories.ArticleRepository
	versionRepo     repositories.ArticleVersionRepository
	translationRepo repositories.TranslationRepository
	languageRepo    repositories.LanguageRepository
	translator      translator.Client
	sourceLang      string
}

func NewTranslationService(
	db *gorm.DB,
	articleRepo repositories.ArticleRepository,
	versionRepo repositories.ArticleVersionRepository,
	translationRepo repositories.TranslationRepository,
	languageRepo repositories.LanguageRepository,
	translatorClient translator.Client,
	sourceLang string,
) TranslationService {
	if sourceLang == "" {
		sourceLang = "en"
	}
	return &translationService{
		db:              db,
		articleRepo:     articleRepo,
		versionRepo:     versionRepo,
		translationRepo: translationRepo,
		languageRepo:    languageRepo,
		translator:      translatorClient,
		sourceLang:      sourceLang,
	}
}

func (s *translationService) Attach(req models.AttachTranslationRequest, role models.UserRole) (*models.TranslationMembership, error) {
	if err := permissions.Check(role, permissions.OpManageTranslations); err != nil {
		return nil, err
	}

	// The language must be registered; inactive languages stay attachable
	// so existing groups can be completed.
	if _, err := s.languageRepo.GetByCode(req.LanguageCode); err != nil {
		return nil, notFoundOr(err, "language %s not found", req.LanguageCode)
	}

	// Build the seed before the transaction so translator calls do not
	// hold the article row lock.
	var seed *models.ArticleVersion
	if req.AutoTranslateFromArticleID != nil {
		built, err := s.buildSeedSnapshot(*req.AutoTranslateFromArticleID, req.LanguageCode)
		if err != nil {
			return nil, err
		}
		seed = built
	}

	var membership *models.TranslationMembership
	err := repositories.RunInTransaction(s.db, func(tx *gorm.DB) error {
		translations := s.translationRepo.WithTx(tx)

		article, err := s.articleRepo.WithTx(tx).GetForUpdate(req.ArticleID)
		if err != nil {
			return notFoundOr(err, "article %d not found", req.ArticleID)
		}

		var groupID uint
		if req.GroupID != nil {
			group, err := translations.GetGroup(*req.GroupID)
			if err != nil {
				return notFoundOr(err, "translation group %d not found", *req.GroupID)
			}
			groupID = group.ID
		}

		// An article belongs to at most one group. Repeating an attach
		// with the same group and language is a no-op.
		if existing, err := translations.GetMembershipByArticle(article.ID); err == nil {
			if req.GroupID != nil && existing.GroupID == *req.GroupID && existing.LanguageCode == req.LanguageCode {
				membership = existing
				return nil
			}
			return models.NewErrorConflict(
				"article %d is already in translation group %d as %s",
				article.ID, existing.GroupID, existing.LanguageCode)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if groupID == 0 {
			group := &models.TranslationGroup{}
			if err := translations.CreateGroup(group); err != nil {
				return err
			}
			groupID = group.ID
		}

		// One article per language inside a group.
		if taken, err := translations.GetMembershipByGroupAndLanguage(groupID, req.LanguageCode); err == nil {
			return models.NewErrorConflict(
				"translation group %d already has a %s article (article %d)",
				groupID, req.LanguageCode, taken.ArticleID)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		created := &models.TranslationMembership{
			ArticleID:    article.ID,
			GroupID:      groupID,
			LanguageCode: req.LanguageCode,
		}
		if err := translations.CreateMembership(created); err != nil {
			return err
		}

		// Seeding and membership commit together: a blocked seed rolls
		// the membership back too.
		if seed != nil {
			if _, err := newDraftLocked(tx, s.versionRepo, article, seed); err != nil {
				return err
			}
		}

		membership = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return membership, nil
}

func (s *translationService) Detach(articleID uint, role models.UserRole) error {
	if err := permissions.Check(role, permissions.OpManageTranslations); err != nil {
		return err
	}

	return repositories.RunInTransaction(s.db, func(tx *gorm.DB) error {
		translations := s.translationRepo.WithTx(tx)

		membership, err := translations.GetMembershipByArticle(articleID)
		if err != nil {
			return notFoundOr(err, "article %d is not in a translation group", articleID)
		}

		if err := translations.DeleteMembership(membership.ID); err != nil {
			return err
		}

		remaining, err := translations.CountMembers(membership.GroupID)
		if err != nil {
			return err
		}
		if remaining == 0 {
			return translations.DeleteGroup(membership.GroupID)
		}
		return nil
	})
}

// ListSiblings returns the other members of the article's translation
// group. An article outside any group has no siblings.
func (s *translationService) ListSiblings(articleID uint) ([]models.TranslationMembership, error) {
	membership, err := s.translationRepo.GetMembershipByArticle(articleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if _, aerr := s.articleRepo.GetByID(articleID); aerr != nil {
				return nil, notFoundOr(aerr, "article %d not found", articleID)
			}
			return []models.TranslationMembership{}, nil
		}
		return nil, err
	}

	members, err := s.translationRepo.ListMembers(membership.GroupID)
	if err != nil {
		return nil, err
	}

	siblings := make([]models.TranslationMembership, 0, len(members))
	for _, m := range members {
		if m.ArticleID != articleID {
			siblings = append(siblings, m)
		}
	}
	return siblings, nil
}

// buildSeedSnapshot prepares draft content for a new sibling from the
// source article's live published snapshot. Title and content are
// translated together or not at all; when the translator is unavailable
// the text is carried over verbatim for manual translation.
func (s *translationService) buildSeedSnapshot(sourceID uint, targetLang string) (*models.ArticleVersion, error) {
	source, err := s.articleRepo.GetByID(sourceID)
	if err != nil {
		return nil, notFoundOr(err, "source article %d not found", sourceID)
	}
	if source.PublishedVersionID == nil {
		return nil, models.NewErrorNotFound("source article %d has no published version", sourceID)
	}

	published, err := s.versionRepo.GetByID(*source.PublishedVersionID)
	if err != nil {
		return nil, err
	}

	fromLang := s.sourceLang
	if m, err := s.translationRepo.GetMembershipByArticle(sourceID); err == nil {
		fromLang = m.LanguageCode
	}

	// New translations start non-public regardless of the source.
	seed := &models.ArticleVersion{
		Title:       published.Title,
		Content:     published.Content,
		Tags:        published.Tags,
		WeightScore: published.WeightScore,
	}

	title, err := s.translator.Translate(published.Title, fromLang, targetLang)
	if err == nil {
		var content string
		content, err = s.translator.Translate(published.Content, fromLang, targetLang)
		if err == nil {
			seed.Title = title
			seed.Content = content
			return seed, nil
		}
	}

	if models.IsTransientDependency(err) {
		slog.Warn("translation: seeding with untranslated text",
			"source_article_id", sourceID,
			"target_language", targetLang,
			"error", err,
		)
		return seed, nil
	}
	return nil, err
}

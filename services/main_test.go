package services

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"kb-cms/models"
	"kb-cms/repositories"
)

var testDBCounter int64

// newTestDB opens a fresh named in-memory database per test. The shared
// cache plus a single pooled connection keeps every query on the same
// sqlite instance.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:services_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, models.InitTable(db))
	return db
}

// recordingIndexer captures search notifications instead of publishing them.
type recordingIndexer struct {
	mu      sync.Mutex
	changed []uint
	deleted []uint
}

func (r *recordingIndexer) NotifyArticleChanged(articleID uint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changed = append(r.changed, articleID)
}

func (r *recordingIndexer) NotifyArticleDeleted(articleID uint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleted = append(r.deleted, articleID)
}

func (r *recordingIndexer) changedCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.changed)
}

func (r *recordingIndexer) deletedCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.deleted)
}

// stubTranslator prefixes text with the target language, or fails like an
// unreachable backend.
type stubTranslator struct {
	fail  bool
	calls int
}

func (s *stubTranslator) Translate(text, from, to string) (string, error) {
	s.calls++
	if s.fail {
		return "", models.NewErrorTransient("translator unavailable", nil)
	}
	if text == "" {
		return "", nil
	}
	return "[" + to + "] " + text, nil
}

type fixture struct {
	db *gorm.DB

	articleRepo     repositories.ArticleRepository
	versionRepo     repositories.ArticleVersionRepository
	translationRepo repositories.TranslationRepository
	languageRepo    repositories.LanguageRepository
	tagRepo         repositories.TagRepository

	indexer    *recordingIndexer
	translator *stubTranslator

	articles     ArticleService
	lifecycle    VersionLifecycleService
	translations TranslationService
	languages    LanguageService
	tags         TagService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := newTestDB(t)
	indexer := &recordingIndexer{}
	stub := &stubTranslator{}

	articleRepo := repositories.NewArticleRepository(db)
	versionRepo := repositories.NewArticleVersionRepository(db)
	translationRepo := repositories.NewTranslationRepository(db)
	languageRepo := repositories.NewLanguageRepository(db)
	tagRepo := repositories.NewTagRepository(db)

	return &fixture{
		db:              db,
		articleRepo:     articleRepo,
		versionRepo:     versionRepo,
		translationRepo: translationRepo,
		languageRepo:    languageRepo,
		tagRepo:         tagRepo,
		indexer:         indexer,
		translator:      stub,
		articles:        NewArticleService(db, articleRepo, versionRepo, tagRepo, translationRepo, indexer),
		lifecycle:       NewVersionLifecycleService(db, articleRepo, versionRepo, tagRepo, indexer),
		translations:    NewTranslationService(db, articleRepo, versionRepo, translationRepo, languageRepo, stub, "en"),
		languages:       NewLanguageService(languageRepo, translationRepo),
		tags:            NewTagService(tagRepo, articleRepo),
	}
}

func (f *fixture) createArticle(t *testing.T, title string, isPublic bool, tags ...string) *models.Article {
	t.Helper()

	article, err := f.articles.CreateArticle(models.CreateArticleRequest{
		Title:    title,
		Content:  "Content of " + title,
		Tags:     tags,
		IsPublic: isPublic,
	}, 1, models.RoleAdmin)
	require.NoError(t, err)
	return article
}

func (f *fixture) addLanguage(t *testing.T, code, name string, active bool) *models.Language {
	t.Helper()

	language, err := f.languages.CreateLanguage(models.CreateLanguageRequest{
		Code:     code,
		Name:     name,
		IsActive: &active,
	}, models.RoleAdmin)
	require.NoError(t, err)
	return language
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func uintPtr(v uint) *uint { return &v }

func floatPtr(v float64) *float64 { return &v }

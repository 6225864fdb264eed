package repositories

import (
	"gorm.io/gorm"

	"kb-cms/models"
)

type ArticleVersionRepository interface {
	WithTx(tx *gorm.DB) ArticleVersionRepository
	Create(version *models.ArticleVersion) error
	Update(version *models.ArticleVersion) error
	GetByID(id uint) (*models.ArticleVersion, error)
	GetDraft(articleID uint) (*models.ArticleVersion, error)
	GetPublishedByNumber(articleID uint, number int) (*models.ArticleVersion, error)
	List(articleID uint, includeDrafts bool) ([]models.ArticleVersion, error)
	NextVersionNumber(articleID uint) (int, error)
	Discard(version *models.ArticleVersion) error
}

type articleVersionRepository struct {
	db *gorm.DB
}

func NewArticleVersionRepository(db *gorm.DB) ArticleVersionRepository {
	return &articleVersionRepository{db: db}
}

func (r *articleVersionRepository) WithTx(tx *gorm.DB) ArticleVersionRepository {
	return &articleVersionRepository{db: tx}
}

func (r *articleVersionRepository) Create(version *models.ArticleVersion) error {
	return r.db.Create(version).Error
}

func (r *articleVersionRepository) Update(version *models.ArticleVersion) error {
	return r.db.Save(version).Error
}

func (r *articleVersionRepository) GetByID(id uint) (*models.ArticleVersion, error) {
	var version models.ArticleVersion
	err := r.db.First(&version, id).Error
	return &version, err
}

func (r *articleVersionRepository) GetDraft(articleID uint) (*models.ArticleVersion, error) {
	var version models.ArticleVersion
	err := r.db.Where("article_id = ? AND is_draft = ?", articleID, true).
		First(&version).Error
	return &version, err
}

func (r *articleVersionRepository) GetPublishedByNumber(articleID uint, number int) (*models.ArticleVersion, error) {
	var version models.ArticleVersion
	err := r.db.Where("article_id = ? AND version_number = ? AND is_draft = ?", articleID, number, false).
		First(&version).Error
	return &version, err
}

func (r *articleVersionRepository) List(articleID uint, includeDrafts bool) ([]models.ArticleVersion, error) {
	var versions []models.ArticleVersion
	query := r.db.Where("article_id = ?", articleID)
	if !includeDrafts {
		query = query.Where("is_draft = ?", false)
	}
	err := query.Order("version_number asc").Find(&versions).Error
	return versions, err
}

// NextVersionNumber allocates the next number for an article. Discarded
// drafts are soft deleted, so the scan must include them: a number is
// consumed the moment it is handed out and never comes back.
func (r *articleVersionRepository) NextVersionNumber(articleID uint) (int, error) {
	var next int
	err := r.db.Unscoped().
		Model(&models.ArticleVersion{}).
		Where("article_id = ?", articleID).
		Select("COALESCE(MAX(version_number), 0) + 1").
		Scan(&next).Error
	return next, err
}

func (r *articleVersionRepository) Discard(version *models.ArticleVersion) error {
	return r.db.Delete(version).Error
}

package repositories

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"kb-cms/models"
)

type ArticleRepository interface {
	WithTx(tx *gorm.DB) ArticleRepository
	Create(article *models.Article) error
	GetByID(id uint) (*models.Article, error)
	GetForUpdate(id uint) (*models.Article, error)
	GetList(params models.ArticleListParams, publicOnly bool) ([]models.Article, int64, error)
	Update(article *models.Article) error
	Delete(id uint) error
	IncrementViewCount(id uint) error
	AddFeedback(id uint, helpful bool) error
	CountWithTag(name string) (int64, error)
}

type articleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) WithTx(tx *gorm.DB) ArticleRepository {
	return &articleRepository{db: tx}
}

func (r *articleRepository) Create(article *models.Article) error {
	return r.db.Create(article).Error
}

func (r *articleRepository) GetByID(id uint) (*models.Article, error) {
	var article models.Article
	err := r.db.Preload("Author").
		Preload("PublishedVersion").
		First(&article, id).Error
	return &article, err
}

// GetForUpdate loads the article row under a row lock so concurrent version
// mutations on the same article serialize. Sqlite has no FOR UPDATE; there
// the whole database locks on write, which serves the same purpose.
func (r *articleRepository) GetForUpdate(id uint) (*models.Article, error) {
	var article models.Article
	query := r.db
	if r.db.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	err := query.First(&article, id).Error
	return &article, err
}

var articleSortColumns = map[string]bool{
	"created_at":    true,
	"updated_at":    true,
	"title":         true,
	"view_count":    true,
	"weight_score":  true,
	"helpful_votes": true,
}

func (r *articleRepository) GetList(params models.ArticleListParams, publicOnly bool) ([]models.Article, int64, error) {
	var articles []models.Article
	var total int64

	query := r.db.Model(&models.Article{}).Preload("Author")

	if publicOnly {
		query = query.Where("is_public = ? AND published_version_id IS NOT NULL", true)
	}

	if params.Search != "" {
		like := "%" + params.Search + "%"
		query = query.Where("title LIKE ? OR content LIKE ?", like, like)
	}

	query.Count(&total)

	sortBy := params.SortBy
	if !articleSortColumns[sortBy] {
		sortBy = "created_at"
	}
	sortOrder := params.SortOrder
	if sortOrder != "asc" {
		sortOrder = "desc"
	}

	offset := (params.Page - 1) * params.Limit
	err := query.Order(fmt.Sprintf("%s %s", sortBy, sortOrder)).
		Offset(offset).Limit(params.Limit).
		Find(&articles).Error

	return articles, total, err
}

func (r *articleRepository) Update(article *models.Article) error {
	return r.db.Save(article).Error
}

func (r *articleRepository) Delete(id uint) error {
	return r.db.Delete(&models.Article{}, id).Error
}

func (r *articleRepository) IncrementViewCount(id uint) error {
	return r.db.Model(&models.Article{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

func (r *articleRepository) AddFeedback(id uint, helpful bool) error {
	column := "unhelpful_votes"
	if helpful {
		column = "helpful_votes"
	}

	result := r.db.Model(&models.Article{}).Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountWithTag counts live published articles whose tag list contains the
// given name. Tags are stored as a JSON array, so the quoted name is matched
// as a substring.
func (r *articleRepository) CountWithTag(name string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Article{}).
		Where("published_version_id IS NOT NULL AND tags LIKE ?", fmt.Sprintf(`%%"%s"%%`, name)).
		Count(&count).Error
	return count, err
}

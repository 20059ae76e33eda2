package services

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Blindworks/rhenanenmanager/apperr"
	"github.com/Blindworks/rhenanenmanager/internal/models"
	"github.com/Blindworks/rhenanenmanager/validation"
)

// ArticleRequest is the write shape for journal articles.
type ArticleRequest struct {
	Title             string       `json:"title"`
	Subtitle          string       `json:"subtitle,omitempty"`
	AlternativeAuthor string       `json:"alternative_author,omitempty"`
	Category          string       `json:"category,omitempty"`
	Text              string       `json:"text,omitempty"`
	Year              *int         `json:"year,omitempty"`
	Month             *int         `json:"month,omitempty"`
	Page              *int         `json:"page,omitempty"`
	Date              *models.Date `json:"date,omitempty"`
}

// ArticlePage is the paginated list envelope.
type ArticlePage struct {
	Items  []models.ArticleEntry `json:"items"`
	Total  int64                 `json:"total"`
	Limit  int                   `json:"limit"`
	Offset int                   `json:"offset"`
}

// ArticleService manages the journal article entries: CRUD plus the
// paginated listing, search and facet queries the glossary UI needs.
type ArticleService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewArticleService(db *gorm.DB, log *zap.Logger) *ArticleService {
	return &ArticleService{db: db, log: log}
}

// ListParams narrows List: optional category filter and keyword search over
// title, subtitle and text.
type ListParams struct {
	Limit    int
	Page     int
	Category string
	Query    string
}

// List returns articles ordered year desc, month desc with a total count.
func (s *ArticleService) List(ctx context.Context, p ListParams) (*ArticlePage, error) {
	limit := p.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset := 0
	if p.Page > 1 {
		offset = (p.Page - 1) * limit
	}

	q := s.db.WithContext(ctx).Model(&models.ArticleEntry{})
	if p.Category != "" {
		q = q.Where("category = ?", p.Category)
	}
	if p.Query != "" {
		like := "%" + p.Query + "%"
		q = q.Where("title LIKE ? OR subtitle LIKE ? OR text LIKE ?", like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, apperr.Internal(err, "failed to count articles")
	}
	var items []models.ArticleEntry
	if err := q.Order("year DESC").Order("month DESC").Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, apperr.Internal(err, "failed to list articles")
	}
	return &ArticlePage{Items: items, Total: total, Limit: limit, Offset: offset}, nil
}

// GetByID returns a single article.
func (s *ArticleService) GetByID(ctx context.Context, id uint) (*models.ArticleEntry, error) {
	var a models.ArticleEntry
	if err := s.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, notFoundOr(err, "article not found with id %d", id)
	}
	return &a, nil
}

// ByYear returns all articles of a year ordered month desc.
func (s *ArticleService) ByYear(ctx context.Context, year int) ([]models.ArticleEntry, error) {
	var items []models.ArticleEntry
	err := s.db.WithContext(ctx).Where("year = ?", year).Order("month DESC").Find(&items).Error
	if err != nil {
		return nil, apperr.Internal(err, "failed to list articles by year")
	}
	return items, nil
}

// Categories enumerates the distinct categories in use, sorted.
func (s *ArticleService) Categories(ctx context.Context) ([]string, error) {
	var out []string
	err := s.db.WithContext(ctx).Model(&models.ArticleEntry{}).
		Where("category <> ''").Distinct("category").Order("category").
		Pluck("category", &out).Error
	if err != nil {
		return nil, apperr.Internal(err, "failed to list categories")
	}
	return out, nil
}

// Years enumerates the distinct publication years, newest first.
func (s *ArticleService) Years(ctx context.Context) ([]int, error) {
	var out []int
	err := s.db.WithContext(ctx).Model(&models.ArticleEntry{}).
		Where("year IS NOT NULL").Distinct("year").Order("year DESC").
		Pluck("year", &out).Error
	if err != nil {
		return nil, apperr.Internal(err, "failed to list years")
	}
	return out, nil
}

// Create persists a new article.
func (s *ArticleService) Create(ctx context.Context, req ArticleRequest, createdBy *uint) (*models.ArticleEntry, error) {
	s.log.Debug("creating article", zap.String("title", req.Title))
	if err := validateArticleRequest(req); err != nil {
		return nil, err
	}
	a := models.ArticleEntry{
		Title:             req.Title,
		Subtitle:          req.Subtitle,
		AlternativeAuthor: req.AlternativeAuthor,
		Category:          req.Category,
		Text:              req.Text,
		Year:              req.Year,
		Month:             req.Month,
		Page:              req.Page,
		Date:              req.Date,
		CreatedByID:       createdBy,
		UpdatedByID:       createdBy,
	}
	if err := s.db.WithContext(ctx).Create(&a).Error; err != nil {
		return nil, apperr.Internal(err, "failed to create article")
	}
	s.log.Info("article created", zap.Uint("id", a.ID))
	return &a, nil
}

// Update replaces the mutable fields of an existing article.
func (s *ArticleService) Update(ctx context.Context, id uint, req ArticleRequest, updatedBy *uint) (*models.ArticleEntry, error) {
	s.log.Debug("updating article", zap.Uint("id", id))
	if err := validateArticleRequest(req); err != nil {
		return nil, err
	}
	var a models.ArticleEntry
	if err := s.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, notFoundOr(err, "article not found with id %d", id)
	}
	a.Title = req.Title
	a.Subtitle = req.Subtitle
	a.AlternativeAuthor = req.AlternativeAuthor
	a.Category = req.Category
	a.Text = req.Text
	a.Year = req.Year
	a.Month = req.Month
	a.Page = req.Page
	a.Date = req.Date
	a.UpdatedByID = updatedBy
	if err := s.db.WithContext(ctx).Save(&a).Error; err != nil {
		return nil, apperr.Internal(err, "failed to update article")
	}
	s.log.Info("article updated", zap.Uint("id", a.ID))
	return &a, nil
}

// Delete removes an article permanently.
func (s *ArticleService) Delete(ctx context.Context, id uint) error {
	s.log.Debug("deleting article", zap.Uint("id", id))
	res := s.db.WithContext(ctx).Delete(&models.ArticleEntry{}, id)
	if res.Error != nil {
		return apperr.Internal(res.Error, "failed to delete article")
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("article not found with id %d", id)
	}
	s.log.Info("article deleted", zap.Uint("id", id))
	return nil
}

func validateArticleRequest(req ArticleRequest) error {
	v := validation.Violations{}
	validation.Required("title", req.Title, v)
	if req.Month != nil {
		validation.RangeInt("month", *req.Month, 1, 12, v)
	}
	if !v.Empty() {
		return apperr.ValidationDetails("validation_failed", v)
	}
	return nil
}

package repo

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Skotchmaster/medstore/internal/models"
)

type ArticleFilter struct {
	Category string
	Search   string
	Offset   int
	Limit    int
}

func (f ArticleFilter) apply(q *gorm.DB) *gorm.DB {
	q = q.Where("is_published = ?", true)
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Search != "" {
		p := like(f.Search)
		q = q.Where("LOWER(title) LIKE ? OR LOWER(summary) LIKE ? OR LOWER(content) LIKE ?", p, p, p)
	}
	return q
}

func (r *GormRepo) ListArticles(ctx context.Context, f ArticleFilter) (int64, []models.HealthArticle, error) {
	var total int64
	if err := f.apply(r.DB.WithContext(ctx).Model(&models.HealthArticle{})).Count(&total).Error; err != nil {
		return 0, nil, err
	}
	out := []models.HealthArticle{}
	if err := f.apply(r.DB.WithContext(ctx)).Order("created_at DESC").
		Offset(f.Offset).Limit(f.Limit).Find(&out).Error; err != nil {
		return 0, nil, err
	}
	return total, out, nil
}

// ArticleBySlug returns a published article and counts the view.
func (r *GormRepo) ArticleBySlug(ctx context.Context, slug string) (*models.HealthArticle, error) {
	var a models.HealthArticle
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("slug = ? AND is_published = ?", slug, true).First(&a).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.HealthArticle{}).Where("id = ?", a.ID).
			UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error; err != nil {
			return err
		}
		a.ViewCount++
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateArticle stores a under base, or base-2, base-3... when the slug is taken.
func (r *GormRepo) CreateArticle(ctx context.Context, a *models.HealthArticle, base string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		slug := base
		for n := 2; ; n++ {
			var count int64
			if err := tx.Model(&models.HealthArticle{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				break
			}
			slug = fmt.Sprintf("%s-%d", base, n)
		}
		a.Slug = slug
		return tx.Create(a).Error
	})
}

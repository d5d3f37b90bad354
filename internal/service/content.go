package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Skotchmaster/medstore/internal/models"
	"github.com/Skotchmaster/medstore/internal/repo"
	"github.com/Skotchmaster/medstore/internal/transport"
	"github.com/Skotchmaster/medstore/internal/util"
)

type ArticleService struct {
	Repo *repo.GormRepo
}

func (s *ArticleService) List(ctx context.Context, f repo.ArticleFilter) (int64, []models.HealthArticle, error) {
	return s.Repo.ListArticles(ctx, f)
}

func (s *ArticleService) BySlug(ctx context.Context, slug string) (*models.HealthArticle, error) {
	a, err := s.Repo.ArticleBySlug(ctx, slug)
	if err != nil {
		return nil, orNotFound(err, "Article not found")
	}
	return a, nil
}

func (s *ArticleService) Create(ctx context.Context, req transport.ArticleRequest) (*models.HealthArticle, error) {
	base := util.Slugify(req.Title)
	if base == "" {
		return nil, validation("title must contain letters or digits")
	}
	a := models.HealthArticle{
		Title:                 strings.TrimSpace(req.Title),
		Content:               req.Content,
		Summary:               req.Summary,
		Author:                req.Author,
		Category:              req.Category,
		Tags:                  nonNil(req.Tags),
		RelatedHealthConcerns: nonNil(req.RelatedHealthConcerns),
		IsPublished:           true,
		ReadTime:              req.ReadTime,
	}
	if req.IsPublished != nil {
		a.IsPublished = *req.IsPublished
	}
	if a.ReadTime == 0 {
		a.ReadTime = readTime(req.Content)
	}
	if err := s.Repo.CreateArticle(ctx, &a, base); err != nil {
		return nil, err
	}
	return &a, nil
}

// readTime estimates minutes at 200 words per minute, never below one.
func readTime(content string) int {
	words := len(strings.Fields(content))
	minutes := (words + 199) / 200
	if minutes < 1 {
		return 1
	}
	return minutes
}

type ConcernService struct {
	Repo *repo.GormRepo
}

func (s *ConcernService) List(ctx context.Context, search string, offset, limit int) (int64, []models.HealthConcern, error) {
	return s.Repo.ListHealthConcerns(ctx, search, offset, limit)
}

func (s *ConcernService) BySlug(ctx context.Context, slug string) (*models.HealthConcern, error) {
	hc, err := s.Repo.HealthConcernBySlug(ctx, slug)
	if err != nil {
		return nil, orNotFound(err, "Health concern not found")
	}
	return hc, nil
}

func (s *ConcernService) Create(ctx context.Context, req transport.HealthConcernRequest) (*models.HealthConcern, error) {
	hc := models.HealthConcern{
		Name:           strings.TrimSpace(req.Name),
		Slug:           util.Slugify(req.Name),
		Description:    req.Description,
		Symptoms:       nonNil(req.Symptoms),
		PreventionTips: nonNil(req.PreventionTips),
	}
	if hc.Slug == "" {
		return nil, validation("name must contain letters or digits")
	}
	if err := s.Repo.CreateHealthConcern(ctx, &hc); err != nil {
		if errors.Is(err, repo.ErrAlreadyExists) {
			return nil, conflict("Health concern already exists")
		}
		return nil, err
	}
	return &hc, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

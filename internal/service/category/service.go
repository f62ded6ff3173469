package category

import (
	"context"
	"fmt"
	"sort"

	"lms-theme-renderer/internal/domain"
	"lms-theme-renderer/internal/repository/category"
)

type Service struct {
	repo    category.Repository
	siteURL string
}

func New(repo category.Repository, siteURL string) *Service {
	return &Service{repo: repo, siteURL: siteURL}
}

// Tree loads every category and links it under its parent. Only roots are
// returned; categories whose parent is missing never reach the result.
func (s *Service) Tree(ctx context.Context) ([]*domain.Category, error) {
	flat, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return Forest(flat, s.siteURL), nil
}

func (s *Service) Upsert(ctx context.Context, c domain.Category) (*domain.Category, error) {
	return s.repo.Upsert(ctx, c)
}

// Forest assembles flat categories into trees ordered by sort order then ID.
func Forest(flat []domain.Category, siteURL string) []*domain.Category {
	nodes := make(map[int64]*domain.Category, len(flat))
	ordered := make([]*domain.Category, 0, len(flat))
	for i := range flat {
		c := flat[i]
		c.Children = nil
		c.URL = ViewURL(siteURL, c.ID)
		nodes[c.ID] = &c
		ordered = append(ordered, &c)
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].SortOrder != ordered[j].SortOrder {
			return ordered[i].SortOrder < ordered[j].SortOrder
		}
		return ordered[i].ID < ordered[j].ID
	})

	var roots []*domain.Category
	for _, c := range ordered {
		if c.IsRoot() {
			roots = append(roots, c)
			continue
		}
		if parent, ok := nodes[*c.ParentID]; ok {
			parent.Children = append(parent.Children, c)
		}
	}
	return roots
}

// ViewURL is the category listing page of a category.
func ViewURL(siteURL string, id int64) string {
	return fmt.Sprintf("%s/course/index.php?categoryid=%d", siteURL, id)
}

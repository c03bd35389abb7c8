package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/msomdec/ideabox/internal/domain"
)

// IdeaService handles listing and creating a user's ideas.
type IdeaService struct {
	ideas domain.IdeaRepository
}

// NewIdeaService creates a new IdeaService.
func NewIdeaService(ideas domain.IdeaRepository) *IdeaService {
	return &IdeaService{ideas: ideas}
}

// List returns every idea owned by userID, most recent first.
func (s *IdeaService) List(ctx context.Context, userID int64) ([]domain.Idea, error) {
	ideas, err := s.ideas.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list ideas: %w", err)
	}
	return ideas, nil
}

// Add stores a new idea for userID. The title must be non-empty after
// trimming; nothing is written otherwise.
func (s *IdeaService) Add(ctx context.Context, userID int64, title, memo string) (*domain.Idea, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}

	idea := &domain.Idea{
		UserID: userID,
		Title:  title,
		Memo:   strings.TrimSpace(memo),
	}
	if err := s.ideas.Create(ctx, idea); err != nil {
		return nil, fmt.Errorf("create idea: %w", err)
	}
	return idea, nil
}

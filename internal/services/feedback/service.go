package feedback

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("feedback entry not found")
)

type Feedback struct {
	ID       string
	Name     string
	Phone    string
	Place    string
	Feedback string
}

type Store interface {
	Insert(ctx context.Context, entry Feedback) (Feedback, error)
	List(ctx context.Context) ([]Feedback, error)
	Delete(ctx context.Context, id string) (Feedback, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Create(ctx context.Context, entry Feedback) (Feedback, error) {
	if s.store == nil {
		return Feedback{}, fmt.Errorf("feedback store is nil")
	}
	if strings.TrimSpace(entry.Name) == "" || strings.TrimSpace(entry.Feedback) == "" {
		return Feedback{}, ErrValidation
	}

	created, err := s.store.Insert(ctx, entry)
	if err != nil {
		return Feedback{}, fmt.Errorf("insert feedback: %w", err)
	}

	return created, nil
}

func (s *Service) List(ctx context.Context) ([]Feedback, error) {
	if s.store == nil {
		return nil, fmt.Errorf("feedback store is nil")
	}

	entries, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}

	return entries, nil
}

func (s *Service) Delete(ctx context.Context, id string) (Feedback, error) {
	if s.store == nil {
		return Feedback{}, fmt.Errorf("feedback store is nil")
	}
	if strings.TrimSpace(id) == "" {
		return Feedback{}, ErrValidation
	}

	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Feedback{}, ErrNotFound
		}
		return Feedback{}, fmt.Errorf("delete feedback: %w", err)
	}

	return deleted, nil
}

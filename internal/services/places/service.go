package places

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("place not found")
)

// Place carries the tourist-place document: title, location and description
// are mandatory, the rest is optional guide and safety metadata.
type Place struct {
	ID                 string
	Title              string
	Location           string
	GuideName          string
	GuideMobile        string
	GuideLanguage      string
	ResidentialDetails string
	PoliceStation      string
	FireStation        string
	MapLink            string
	Description        string
	ImageKey           string
	Latitude           string
	Longitude          string
}

type Store interface {
	Insert(ctx context.Context, place Place) (Place, error)
	List(ctx context.Context) ([]Place, error)
	Get(ctx context.Context, id string) (Place, error)
	Update(ctx context.Context, id string, place Place) (Place, error)
	Delete(ctx context.Context, id string) (Place, error)
	SetImageKey(ctx context.Context, id, key string) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Create(ctx context.Context, place Place) (Place, error) {
	if s.store == nil {
		return Place{}, fmt.Errorf("place store is nil")
	}
	if err := validate(place); err != nil {
		return Place{}, err
	}

	created, err := s.store.Insert(ctx, place)
	if err != nil {
		return Place{}, fmt.Errorf("insert place: %w", err)
	}

	return created, nil
}

func (s *Service) List(ctx context.Context) ([]Place, error) {
	if s.store == nil {
		return nil, fmt.Errorf("place store is nil")
	}

	placesList, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list places: %w", err)
	}

	return placesList, nil
}

func (s *Service) Get(ctx context.Context, id string) (Place, error) {
	if s.store == nil {
		return Place{}, fmt.Errorf("place store is nil")
	}
	if strings.TrimSpace(id) == "" {
		return Place{}, ErrValidation
	}

	place, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Place{}, ErrNotFound
		}
		return Place{}, fmt.Errorf("get place: %w", err)
	}

	return place, nil
}

func (s *Service) Update(ctx context.Context, id string, place Place) (Place, error) {
	if s.store == nil {
		return Place{}, fmt.Errorf("place store is nil")
	}
	if strings.TrimSpace(id) == "" {
		return Place{}, ErrValidation
	}
	if err := validate(place); err != nil {
		return Place{}, err
	}

	updated, err := s.store.Update(ctx, id, place)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Place{}, ErrNotFound
		}
		return Place{}, fmt.Errorf("update place: %w", err)
	}

	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) (Place, error) {
	if s.store == nil {
		return Place{}, fmt.Errorf("place store is nil")
	}
	if strings.TrimSpace(id) == "" {
		return Place{}, ErrValidation
	}

	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Place{}, ErrNotFound
		}
		return Place{}, fmt.Errorf("delete place: %w", err)
	}

	return deleted, nil
}

func (s *Service) AttachImage(ctx context.Context, id, objectKey string) error {
	if s.store == nil {
		return fmt.Errorf("place store is nil")
	}
	if strings.TrimSpace(id) == "" || strings.TrimSpace(objectKey) == "" {
		return ErrValidation
	}

	if err := s.store.SetImageKey(ctx, id, objectKey); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("set place image: %w", err)
	}

	return nil
}

func validate(place Place) error {
	if strings.TrimSpace(place.Title) == "" {
		return fmt.Errorf("title is required: %w", ErrValidation)
	}
	if strings.TrimSpace(place.Location) == "" {
		return fmt.Errorf("location is required: %w", ErrValidation)
	}
	if strings.TrimSpace(place.Description) == "" {
		return fmt.Errorf("description is required: %w", ErrValidation)
	}
	return nil
}

package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("booking not found")
)

type Booking struct {
	ID           string
	Name         string
	MobileNumber string
	Place        string
	Participants int
	Date         time.Time
	Time         string
	Language     string
	TotalPrice   float64
}

type Store interface {
	Insert(ctx context.Context, booking Booking) (Booking, error)
	List(ctx context.Context) ([]Booking, error)
	Delete(ctx context.Context, id string) (Booking, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Create(ctx context.Context, booking Booking) (Booking, error) {
	if s.store == nil {
		return Booking{}, fmt.Errorf("booking store is nil")
	}
	if err := validate(booking); err != nil {
		return Booking{}, err
	}

	created, err := s.store.Insert(ctx, booking)
	if err != nil {
		return Booking{}, fmt.Errorf("insert booking: %w", err)
	}

	return created, nil
}

func (s *Service) List(ctx context.Context) ([]Booking, error) {
	if s.store == nil {
		return nil, fmt.Errorf("booking store is nil")
	}

	bookingsList, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	return bookingsList, nil
}

func (s *Service) Delete(ctx context.Context, id string) (Booking, error) {
	if s.store == nil {
		return Booking{}, fmt.Errorf("booking store is nil")
	}
	if strings.TrimSpace(id) == "" {
		return Booking{}, ErrValidation
	}

	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Booking{}, ErrNotFound
		}
		return Booking{}, fmt.Errorf("delete booking: %w", err)
	}

	return deleted, nil
}

func validate(booking Booking) error {
	if strings.TrimSpace(booking.Name) == "" {
		return fmt.Errorf("name is required: %w", ErrValidation)
	}
	if strings.TrimSpace(booking.MobileNumber) == "" {
		return fmt.Errorf("mobile number is required: %w", ErrValidation)
	}
	if strings.TrimSpace(booking.Place) == "" {
		return fmt.Errorf("place is required: %w", ErrValidation)
	}
	if booking.Participants < 1 {
		return fmt.Errorf("participants must be at least 1: %w", ErrValidation)
	}
	if booking.Date.IsZero() {
		return fmt.Errorf("date is required: %w", ErrValidation)
	}
	if strings.TrimSpace(booking.Time) == "" {
		return fmt.Errorf("time is required: %w", ErrValidation)
	}
	if strings.TrimSpace(booking.Language) == "" {
		return fmt.Errorf("language is required: %w", ErrValidation)
	}
	if booking.TotalPrice < 0 {
		return fmt.Errorf("total price must not be negative: %w", ErrValidation)
	}
	return nil
}

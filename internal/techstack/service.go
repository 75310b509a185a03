package techstack

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vkportfolio/service-core-go/internal/techstack/entity"
	"github.com/vkportfolio/service-core-go/pkg/utilities"
)

// Store is the persistence surface the service needs.
type Store interface {
	List(ctx context.Context, category string, limit, offset int) ([]*entity.TechStack, error)
	GetByID(ctx context.Context, id string) (*entity.TechStack, error)
	Create(ctx context.Context, ts *entity.TechStack) error
	Update(ctx context.Context, ts *entity.TechStack) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

// sentinel errors for common failure modes
var ErrNotFound = errors.New("not found")

const (
	defaultLimit = 50
	maxLimit     = 200
)

// Service encapsulates business logic for tech-stack entries.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// List returns entries by category (optional) with pagination.
func (s *Service) List(ctx context.Context, category string, limit, offset int) ([]*entity.TechStack, error) {
	if limit <= 0 || limit > maxLimit {
		limit = defaultLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.store.List(ctx, category, limit, offset)
}

// Get returns an entry by id.
func (s *Service) Get(ctx context.Context, id string) (*entity.TechStack, error) {
	ts, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return ts, nil
}

// Create persists a new entry, applying sensible defaults when fields are
// omitted.
func (s *Service) Create(ctx context.Context, in *entity.TechStack) (*entity.TechStack, error) {
	if in.Name == "" {
		return nil, errors.New("name is required")
	}
	now := time.Now().UTC()
	if in.ID == "" {
		in.ID = utilities.NewKSUID()
	}
	if in.Category == "" {
		in.Category = "other"
	}
	in.Proficiency = clampProficiency(in.Proficiency)
	in.CreatedAt = now
	in.UpdatedAt = now
	if err := s.store.Create(ctx, in); err != nil {
		return nil, err
	}
	return in, nil
}

// Update rewrites an existing entry, preserving its creation time.
func (s *Service) Update(ctx context.Context, in *entity.TechStack) (*entity.TechStack, error) {
	existing, err := s.store.GetByID(ctx, in.ID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	in.CreatedAt = existing.CreatedAt
	in.UpdatedAt = time.Now().UTC()
	in.Proficiency = clampProficiency(in.Proficiency)
	matched, err := s.store.Update(ctx, in)
	if err != nil {
		return nil, err
	}
	if matched == 0 {
		return nil, ErrNotFound
	}
	return in, nil
}

// Delete removes an entry by id.
func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrNotFound
	}
	return nil
}

func clampProficiency(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/vkportfolio/service-core-go/internal/user/entity"
)

type stubStore struct {
	byEmail     map[string]*entity.User
	created     []*entity.User
	lastLoginID primitive.ObjectID
}

func (s *stubStore) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	if u, ok := s.byEmail[email]; ok {
		return u, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (s *stubStore) GetByID(ctx context.Context, id string) (*entity.User, error) {
	for _, u := range s.byEmail {
		if u.ID.Hex() == id {
			return u, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (s *stubStore) Create(ctx context.Context, u *entity.User) error {
	u.ID = primitive.NewObjectID()
	s.created = append(s.created, u)
	return nil
}

func (s *stubStore) UpdateLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	s.lastLoginID = id
	return nil
}

func storeWithUser(t *testing.T, email, password string, active bool) (*stubStore, *entity.User) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u := &entity.User{
		ID:       primitive.NewObjectID(),
		Name:     "Admin",
		Email:    email,
		Password: string(hash),
		Role:     "admin",
		IsActive: active,
	}
	return &stubStore{byEmail: map[string]*entity.User{email: u}}, u
}

func TestAuthenticatePasswordSuccess(t *testing.T) {
	store, want := storeWithUser(t, "admin@portfolio.com", "admin123", true)
	svc := NewService(store, BcryptHasher{Cost: bcrypt.MinCost})

	got, err := svc.AuthenticatePassword(context.Background(), "  Admin@Portfolio.com ", "admin123")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if got.ID != want.ID {
		t.Fatalf("wrong user returned: %v", got.ID)
	}
	if store.lastLoginID != want.ID {
		t.Fatal("last login was not stamped")
	}
	if got.LastLogin == nil {
		t.Fatal("LastLogin not set on returned record")
	}
}

func TestAuthenticatePasswordWrongPassword(t *testing.T) {
	store, _ := storeWithUser(t, "admin@portfolio.com", "admin123", true)
	svc := NewService(store, BcryptHasher{Cost: bcrypt.MinCost})

	if _, err := svc.AuthenticatePassword(context.Background(), "admin@portfolio.com", "nope"); !errors.Is(err, ErrBadCredentials) {
		t.Fatalf("expected ErrBadCredentials, got %v", err)
	}
}

func TestAuthenticatePasswordUnknownEmail(t *testing.T) {
	store, _ := storeWithUser(t, "admin@portfolio.com", "admin123", true)
	svc := NewService(store, BcryptHasher{Cost: bcrypt.MinCost})

	// same failure as a wrong password, no user enumeration
	if _, err := svc.AuthenticatePassword(context.Background(), "ghost@portfolio.com", "admin123"); !errors.Is(err, ErrBadCredentials) {
		t.Fatalf("expected ErrBadCredentials, got %v", err)
	}
}

func TestAuthenticatePasswordInactive(t *testing.T) {
	store, _ := storeWithUser(t, "admin@portfolio.com", "admin123", false)
	svc := NewService(store, BcryptHasher{Cost: bcrypt.MinCost})

	if _, err := svc.AuthenticatePassword(context.Background(), "admin@portfolio.com", "admin123"); !errors.Is(err, ErrDisabled) {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}
}

func TestAuthenticatePasswordEmptyInput(t *testing.T) {
	store, _ := storeWithUser(t, "admin@portfolio.com", "admin123", true)
	svc := NewService(store, BcryptHasher{Cost: bcrypt.MinCost})

	if _, err := svc.AuthenticatePassword(context.Background(), "", "admin123"); !errors.Is(err, ErrBadCredentials) {
		t.Fatalf("expected ErrBadCredentials for empty email, got %v", err)
	}
	if _, err := svc.AuthenticatePassword(context.Background(), "admin@portfolio.com", ""); !errors.Is(err, ErrBadCredentials) {
		t.Fatalf("expected ErrBadCredentials for empty password, got %v", err)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	svc := NewService(&stubStore{byEmail: map[string]*entity.User{}}, BcryptHasher{Cost: bcrypt.MinCost})
	if _, err := svc.GetByID(context.Background(), primitive.NewObjectID().Hex()); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestCreateUserHashesPassword(t *testing.T) {
	store := &stubStore{byEmail: map[string]*entity.User{}}
	svc := NewService(store, BcryptHasher{Cost: bcrypt.MinCost})

	u, err := svc.CreateUser(context.Background(), "Admin", "Admin@Portfolio.com", "admin123", "admin", true)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.Email != "admin@portfolio.com" {
		t.Fatalf("email not normalized: %q", u.Email)
	}
	if u.Password == "admin123" || u.Password == "" {
		t.Fatal("password stored in clear or empty")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("admin123")) != nil {
		t.Fatal("stored hash does not match password")
	}
	if len(store.created) != 1 {
		t.Fatalf("created %d users, want 1", len(store.created))
	}
}

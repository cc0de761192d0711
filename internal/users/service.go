package users

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/skill-mint/auth-service/internal/credentials"
	"github.com/skill-mint/auth-service/internal/errs"
	"github.com/skill-mint/auth-service/internal/models"
)

// Service encapsulates identity lookup-or-create logic on top of a Repository.
// It is deliberately agnostic of the signup-vs-login decision: the handler
// owns that state machine, the service only exposes the storage primitives.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// GoogleUserData is the asserted profile from a Google sign-in.
type GoogleUserData struct {
	Email          string `json:"email"`
	Name           string `json:"name"`
	GoogleID       string `json:"googleId"`
	ProfilePicture string `json:"profilePicture"`
}

// FindUserByEmail looks up a record case-insensitively. Absence is (nil, nil);
// a storage failure is reported as a coded internal error so callers never
// confuse the two.
func (s *Service) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, errs.Wrap(errs.CodeInternal, err)
	}
	return u, nil
}

// FindUserByID looks up a record by its opaque id. A malformed id is treated
// as absence, matching FindByEmail's contract.
func (s *Service) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errs.Wrap(errs.CodeInternal, err)
	}
	return u, nil
}

// CreateUser constructs a new password identity from normalized credentials.
// A uniqueness violation maps to CodeDuplicateKey, any other storage failure
// to CodeCreateFailed.
func (s *Service) CreateUser(ctx context.Context, clean credentials.UserData) (*models.User, error) {
	clean = credentials.Sanitize(clean)
	if clean.Email == "" || clean.Password == "" {
		return nil, errs.New(errs.CodeValidation)
	}
	u := &models.User{
		Email:       normalizeEmail(clean.Email),
		Password:    clean.Password,
		Name:        clean.Name,
		Phone:       clean.Phone,
		LoginMethod: models.LoginMethodEmail,
		IsActive:    true,
	}
	created, err := s.repo.Insert(ctx, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, errs.Wrap(errs.CodeDuplicateKey, err)
		}
		return nil, errs.Wrap(errs.CodeCreateFailed, err)
	}
	return created, nil
}

// CreateOrUpdateGoogleUser upserts a Google-asserted identity. The record is
// matched by either email or googleId so an account that signed up with a
// password can later link its Google login. Repeat calls with the same data
// keep a single record and its original createdAt.
func (s *Service) CreateOrUpdateGoogleUser(ctx context.Context, data GoogleUserData) (*models.User, error) {
	email := normalizeEmail(data.Email)
	existing, err := s.repo.FindByEmailOrGoogleID(ctx, email, data.GoogleID)
	if err != nil {
		return nil, errs.Wrap(errs.CodeCreateFailed, err)
	}
	if existing != nil {
		if data.Name != "" {
			existing.Name = data.Name
		}
		existing.LoginMethod = models.LoginMethodGoogle
		existing.GoogleID = data.GoogleID
		if data.ProfilePicture != "" {
			existing.ProfilePicture = data.ProfilePicture
		}
		updated, err := s.repo.Update(ctx, existing)
		if err != nil {
			return nil, errs.Wrap(errs.CodeCreateFailed, err)
		}
		return updated, nil
	}
	u := &models.User{
		Email:          email,
		Name:           data.Name,
		LoginMethod:    models.LoginMethodGoogle,
		GoogleID:       data.GoogleID,
		ProfilePicture: data.ProfilePicture,
		IsActive:       true,
	}
	created, err := s.repo.Insert(ctx, u)
	if err != nil {
		return nil, errs.Wrap(errs.CodeCreateFailed, err)
	}
	return created, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Xylphy/AI-Driven-Recruitment-sub000/internal/model"
	"github.com/Xylphy/AI-Driven-Recruitment-sub000/internal/token"
	"github.com/Xylphy/AI-Driven-Recruitment-sub000/pkg/apierror"
)

// userStore is the slice of the user repository the session lifecycle needs.
// Lookups are read-only; token issuance never mutates the database.
type userStore interface {
	FindByID(ctx context.Context, id string) (model.User, error)
	FindByExternalUID(ctx context.Context, externalUID string) (model.User, error)
	ExistsByExternalUIDOrEmail(ctx context.Context, externalUID string, email string) (bool, error)
	Create(ctx context.Context, u model.User) error
}

// AuthService owns the session lifecycle: it is the only component that mints
// tokens. Sessions are fully stateless; the cookies are the session.
type AuthService struct {
	codec *token.Codec
	users userStore
}

func NewAuthService(codec *token.Codec, users userStore) *AuthService {
	return &AuthService{codec: codec, users: users}
}

// Login exchanges an externally-verified identity assertion (the provider
// uid) for a fresh token pair. The assertion is trusted as-is: the calling
// client already completed provider-side authentication.
func (s *AuthService) Login(ctx context.Context, externalUID string) (model.User, model.TokenPair, error) {
	externalUID = strings.TrimSpace(externalUID)
	if externalUID == "" {
		return model.User{}, model.TokenPair{}, apierror.Unauthorized("missing bearer credential")
	}

	user, err := s.users.FindByExternalUID(ctx, externalUID)
	if err != nil {
		if isNotFound(err) {
			return model.User{}, model.TokenPair{}, apierror.Unauthorized("no account for this identity")
		}
		return model.User{}, model.TokenPair{}, err
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return model.User{}, model.TokenPair{}, err
	}

	return user, pair, nil
}

// Refresh rotates the token pair. Every verification failure collapses to
// Unauthorized so the client is pushed back to a clean re-login, never left
// with a half-valid session.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (model.User, model.TokenPair, error) {
	claims, err := s.codec.VerifyRefresh(refreshToken)
	if err != nil {
		return model.User{}, model.TokenPair{}, apierror.Unauthorized("invalid refresh token")
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if isNotFound(err) {
			return model.User{}, model.TokenPair{}, apierror.Unauthorized("account no longer exists")
		}
		return model.User{}, model.TokenPair{}, err
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return model.User{}, model.TokenPair{}, err
	}

	return user, pair, nil
}

// Register creates the local account for a provider identity. New accounts
// always start as candidates; role changes are an admin operation.
func (s *AuthService) Register(ctx context.Context, externalUID string, fullName string, email string) (model.AuthUser, error) {
	externalUID = strings.TrimSpace(externalUID)
	fullName = strings.TrimSpace(fullName)
	email = strings.TrimSpace(email)

	if externalUID == "" {
		return model.AuthUser{}, apierror.Unauthorized("missing bearer credential")
	}
	if fullName == "" || email == "" {
		return model.AuthUser{}, apierror.BadRequest("full_name and email are required", "")
	}

	exists, err := s.users.ExistsByExternalUIDOrEmail(ctx, externalUID, email)
	if err != nil {
		return model.AuthUser{}, err
	}
	if exists {
		return model.AuthUser{}, apierror.Conflict("account already exists", "")
	}

	now := time.Now().UTC()
	user := model.User{
		ID:          uuid.NewString(),
		ExternalUID: externalUID,
		Email:       email,
		FullName:    fullName,
		Role:        model.RoleCandidate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return model.AuthUser{}, err
	}

	return user.Public(), nil
}

func (s *AuthService) VerifyAccess(tokenString string) (*token.AccessClaims, error) {
	return s.codec.VerifyAccess(tokenString)
}

func (s *AuthService) AccessTTL() time.Duration {
	return s.codec.AccessTTL()
}

func (s *AuthService) RefreshTTL() time.Duration {
	return s.codec.RefreshTTL()
}

func (s *AuthService) issuePair(user model.User) (model.TokenPair, error) {
	accessToken, err := s.codec.IssueAccess(user.ID, user.Role)
	if err != nil {
		return model.TokenPair{}, err
	}

	refreshToken, err := s.codec.IssueRefresh(user.ID)
	if err != nil {
		return model.TokenPair{}, err
	}

	return model.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func isNotFound(err error) bool {
	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == "NOT_FOUND"
	}
	return errors.Is(err, model.ErrUserNotFound)
}

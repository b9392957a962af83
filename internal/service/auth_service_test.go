package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xylphy/AI-Driven-Recruitment-sub000/internal/model"
	"github.com/Xylphy/AI-Driven-Recruitment-sub000/internal/token"
	"github.com/Xylphy/AI-Driven-Recruitment-sub000/pkg/apierror"
)

type fakeUserStore struct {
	byID          map[string]model.User
	byExternalUID map[string]model.User
	created       []model.User
}

func newFakeUserStore(users ...model.User) *fakeUserStore {
	store := &fakeUserStore{
		byID:          map[string]model.User{},
		byExternalUID: map[string]model.User{},
	}
	for _, u := range users {
		store.byID[u.ID] = u
		store.byExternalUID[u.ExternalUID] = u
	}
	return store
}

func (s *fakeUserStore) FindByID(_ context.Context, id string) (model.User, error) {
	u, ok := s.byID[id]
	if !ok {
		return model.User{}, apierror.NotFound("user not found", id)
	}
	return u, nil
}

func (s *fakeUserStore) FindByExternalUID(_ context.Context, externalUID string) (model.User, error) {
	u, ok := s.byExternalUID[externalUID]
	if !ok {
		return model.User{}, apierror.NotFound("user not found", "")
	}
	return u, nil
}

func (s *fakeUserStore) ExistsByExternalUIDOrEmail(_ context.Context, externalUID string, email string) (bool, error) {
	if _, ok := s.byExternalUID[externalUID]; ok {
		return true, nil
	}
	for _, u := range s.byID {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeUserStore) Create(_ context.Context, u model.User) error {
	s.byID[u.ID] = u
	s.byExternalUID[u.ExternalUID] = u
	s.created = append(s.created, u)
	return nil
}

func adminUser() model.User {
	return model.User{
		ID:          "u1",
		ExternalUID: "abc123",
		Email:       "admin@example.com",
		FullName:    "Ada Admin",
		Role:        model.RoleAdmin,
	}
}

func newAuthService(t *testing.T, users ...model.User) (*AuthService, *fakeUserStore) {
	t.Helper()

	codec, err := token.NewCodec("test-master-secret", time.Hour, 7*24*time.Hour)
	require.NoError(t, err)
	store := newFakeUserStore(users...)
	return NewAuthService(codec, store), store
}

func TestAuthService_Login(t *testing.T) {
	svc, _ := newAuthService(t, adminUser())

	user, pair, err := svc.Login(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	claims, err := svc.VerifyAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, model.RoleAdmin, claims.Role)
}

func TestAuthService_LoginMissingCredential(t *testing.T) {
	svc, _ := newAuthService(t, adminUser())

	_, _, err := svc.Login(context.Background(), "  ")
	assertUnauthorized(t, err)
}

func TestAuthService_LoginUnknownIdentity(t *testing.T) {
	svc, _ := newAuthService(t, adminUser())

	_, _, err := svc.Login(context.Background(), "nobody")
	assertUnauthorized(t, err)
}

// sentinelStore reports missing users with the model sentinel instead of an
// apierror value, as an external store implementation might.
type sentinelStore struct {
	*fakeUserStore
}

func (s *sentinelStore) FindByExternalUID(context.Context, string) (model.User, error) {
	return model.User{}, model.ErrUserNotFound
}

func TestAuthService_LoginMapsSentinelNotFound(t *testing.T) {
	codec, err := token.NewCodec("test-master-secret", time.Hour, 7*24*time.Hour)
	require.NoError(t, err)
	svc := NewAuthService(codec, &sentinelStore{fakeUserStore: newFakeUserStore()})

	_, _, err = svc.Login(context.Background(), "abc123")
	assertUnauthorized(t, err)
}

func TestAuthService_RefreshRotatesPair(t *testing.T) {
	svc, _ := newAuthService(t, adminUser())

	_, first, err := svc.Login(context.Background(), "abc123")
	require.NoError(t, err)

	user, second, err := svc.Refresh(context.Background(), first.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.NotEqual(t, first.AccessToken, second.AccessToken)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
}

func TestAuthService_RefreshRejectsAccessToken(t *testing.T) {
	svc, _ := newAuthService(t, adminUser())

	_, pair, err := svc.Login(context.Background(), "abc123")
	require.NoError(t, err)

	// Feeding the access token into the refresh path must fail closed.
	_, _, err = svc.Refresh(context.Background(), pair.AccessToken)
	assertUnauthorized(t, err)
}

func TestAuthService_RefreshRejectsGarbage(t *testing.T) {
	svc, _ := newAuthService(t, adminUser())

	_, _, err := svc.Refresh(context.Background(), "not-a-token")
	assertUnauthorized(t, err)
}

func TestAuthService_RefreshDeletedUser(t *testing.T) {
	svc, store := newAuthService(t, adminUser())

	_, pair, err := svc.Login(context.Background(), "abc123")
	require.NoError(t, err)

	delete(store.byID, "u1")

	_, _, err = svc.Refresh(context.Background(), pair.RefreshToken)
	assertUnauthorized(t, err)
}

func TestAuthService_Register(t *testing.T) {
	svc, store := newAuthService(t)

	user, err := svc.Register(context.Background(), "new-uid", "Cara Candidate", "cara@example.com")
	require.NoError(t, err)
	assert.Equal(t, model.RoleCandidate, user.Role)
	require.Len(t, store.created, 1)
	assert.Equal(t, "new-uid", store.created[0].ExternalUID)
}

func TestAuthService_RegisterDuplicate(t *testing.T) {
	svc, _ := newAuthService(t, adminUser())

	_, err := svc.Register(context.Background(), "abc123", "Ada Admin", "admin@example.com")
	var apiErr *apierror.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "ALREADY_EXISTS", apiErr.Code)
}

func TestAuthService_RegisterValidation(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register(context.Background(), "uid", "", "x@example.com")
	var apiErr *apierror.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "BAD_REQUEST", apiErr.Code)
}

func assertUnauthorized(t *testing.T, err error) {
	t.Helper()

	var apiErr *apierror.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "UNAUTHORIZED", apiErr.Code)
}

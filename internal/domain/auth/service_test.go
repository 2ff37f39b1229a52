package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alejoxd70/sactpaper-stationery/internal/core/apperror"
	"github.com/Alejoxd70/sactpaper-stationery/internal/core/id"
)

type fakeUserRepo struct {
	byEmail map[string]*User
}

func (r *fakeUserRepo) Create(ctx context.Context, user *User) error {
	if r.byEmail == nil {
		r.byEmail = make(map[string]*User)
	}
	r.byEmail[user.Email] = user
	return nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	if u, ok := r.byEmail[email]; ok {
		return u, nil
	}
	return nil, apperror.NewNotFound("user", email)
}

func (r *fakeUserRepo) GetByID(ctx context.Context, userID id.ID) (*User, error) {
	for _, u := range r.byEmail {
		if u.ID == userID {
			return u, nil
		}
	}
	return nil, apperror.NewNotFound("user", userID)
}

func newAuthService(t *testing.T) (*Service, *fakeUserRepo) {
	t.Helper()
	repo := &fakeUserRepo{}
	issuer := NewTokenIssuer("test-secret", time.Hour)
	return NewService(repo, issuer), repo
}

func TestLogin_Success(t *testing.T) {
	svc, repo := newAuthService(t)
	ctx := context.Background()

	user, err := NewUser("ana@sactpaper.co", "Ana", "s3cret-pass", RoleCashier)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, user))

	result, err := svc.Login(ctx, "ana@sactpaper.co", "s3cret-pass")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.True(t, result.ExpiresAt.After(time.Now()))

	claims, err := svc.ParseToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.Equal(t, RoleCashier, claims.Role)
	assert.False(t, claims.IsAdmin)
}

func TestLogin_WrongPasswordAndUnknownUserLookAlike(t *testing.T) {
	svc, repo := newAuthService(t)
	ctx := context.Background()

	user, err := NewUser("ana@sactpaper.co", "Ana", "s3cret-pass", RoleCashier)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, user))

	_, errWrongPass := svc.Login(ctx, "ana@sactpaper.co", "wrong")
	_, errNoUser := svc.Login(ctx, "ghost@sactpaper.co", "whatever")

	require.Error(t, errWrongPass)
	require.Error(t, errNoUser)
	a, _ := apperror.AsAppError(errWrongPass)
	b, _ := apperror.AsAppError(errNoUser)
	assert.Equal(t, a.Code, b.Code)
	assert.Equal(t, a.Message, b.Message)
}

func TestLogin_InactiveUserRejected(t *testing.T) {
	svc, repo := newAuthService(t)
	ctx := context.Background()

	user, err := NewUser("ana@sactpaper.co", "Ana", "s3cret-pass", RoleCashier)
	require.NoError(t, err)
	user.Active = false
	require.NoError(t, repo.Create(ctx, user))

	_, err = svc.Login(ctx, "ana@sactpaper.co", "s3cret-pass")
	require.Error(t, err)
	appErr, _ := apperror.AsAppError(err)
	assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)
}

func TestParseToken_RejectsExpired(t *testing.T) {
	repo := &fakeUserRepo{}
	issuer := NewTokenIssuer("test-secret", -time.Minute)
	svc := NewService(repo, issuer)

	user, err := NewUser("ana@sactpaper.co", "Ana", "s3cret-pass", RoleAdmin)
	require.NoError(t, err)

	token, _, err := issuer.Issue(user)
	require.NoError(t, err)

	_, err = svc.ParseToken(token)
	require.Error(t, err)
	appErr, _ := apperror.AsAppError(err)
	assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)
}

func TestParseToken_RejectsTamperedSecret(t *testing.T) {
	user, err := NewUser("ana@sactpaper.co", "Ana", "s3cret-pass", RoleAdmin)
	require.NoError(t, err)

	token, _, err := NewTokenIssuer("secret-a", time.Hour).Issue(user)
	require.NoError(t, err)

	_, err = NewTokenIssuer("secret-b", time.Hour).Parse(token)
	require.Error(t, err)
}

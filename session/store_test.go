package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"go-ballpark/models"
)

type mockAuth struct {
	mock.Mock
}

func (m *mockAuth) Status(ctx context.Context) (*models.SessionUser, error) {
	args := m.Called(ctx)
	u, _ := args.Get(0).(*models.SessionUser)
	return u, args.Error(1)
}

func (m *mockAuth) Login(ctx context.Context, username, password string) (*models.SessionUser, error) {
	args := m.Called(ctx, username, password)
	u, _ := args.Get(0).(*models.SessionUser)
	return u, args.Error(1)
}

func (m *mockAuth) Logout(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

var ctx = context.Background()

func TestNewStore_StartsLoading(t *testing.T) {
	st := NewStore(&mockAuth{}).State()
	assert.Equal(t, PhaseInit, st.Phase)
	assert.True(t, st.Loading)
	assert.False(t, st.Authenticated())
}

func TestCheck_Authenticated(t *testing.T) {
	api := &mockAuth{}
	api.On("Status", ctx).Return(&models.SessionUser{Username: "kim", Role: "ROLE_ADMIN"}, nil)

	s := NewStore(api)
	st := s.Check(ctx)
	assert.Equal(t, PhaseAuthenticated, st.Phase)
	assert.False(t, st.Loading)
	assert.True(t, s.IsAdmin())
}

func TestCheck_AnonymousOnErrorOrMissingUsername(t *testing.T) {
	api := &mockAuth{}
	api.On("Status", ctx).Return(nil, errors.New("401")).Once()
	api.On("Status", ctx).Return(&models.SessionUser{}, nil).Once()

	s := NewStore(api)
	assert.Equal(t, PhaseAnonymous, s.Check(ctx).Phase)
	assert.Equal(t, PhaseAnonymous, s.Check(ctx).Phase)
	api.AssertExpectations(t)
}

func TestLogin_WrongCredentialsStaysAnonymous(t *testing.T) {
	api := &mockAuth{}
	denied := errors.New("401 Unauthorized")
	api.On("Login", ctx, "kim", "bad").Return(nil, denied)

	s := NewStore(api)
	user, err := s.Login(ctx, "kim", "bad")
	assert.Nil(t, user)
	assert.ErrorIs(t, err, denied)
	assert.Equal(t, PhaseAnonymous, s.State().Phase)
}

func TestLogin_NoUsernameIsFailure(t *testing.T) {
	api := &mockAuth{}
	api.On("Login", ctx, "kim", "pw").Return(&models.SessionUser{}, nil)

	s := NewStore(api)
	_, err := s.Login(ctx, "kim", "pw")
	assert.ErrorIs(t, err, ErrNoIdentity)
	assert.Equal(t, PhaseAnonymous, s.State().Phase)
}

func TestLoginThenLogout(t *testing.T) {
	api := &mockAuth{}
	api.On("Login", ctx, "kim", "pw").Return(&models.SessionUser{Username: "kim", Role: "USER"}, nil)
	api.On("Logout", ctx).Return(nil)

	s := NewStore(api)
	user, err := s.Login(ctx, "kim", "pw")
	require.NoError(t, err)
	assert.Equal(t, "kim", user.Username)
	assert.False(t, s.IsAdmin())

	got, ok := s.User()
	require.True(t, ok)
	assert.Equal(t, "kim", got.Username)

	require.NoError(t, s.Logout(ctx))
	assert.Equal(t, PhaseAnonymous, s.State().Phase)
	_, ok = s.User()
	assert.False(t, ok)
}

func TestLogout_ErrorLeavesStateForCaller(t *testing.T) {
	api := &mockAuth{}
	api.On("Login", ctx, "kim", "pw").Return(&models.SessionUser{Username: "kim"}, nil)
	api.On("Logout", ctx).Return(errors.New("network down"))

	s := NewStore(api)
	_, err := s.Login(ctx, "kim", "pw")
	require.NoError(t, err)

	assert.Error(t, s.Logout(ctx))
	assert.Equal(t, PhaseAuthenticated, s.State().Phase)

	s.Reset()
	assert.Equal(t, PhaseAnonymous, s.State().Phase)
}

func TestState_ReturnsCopy(t *testing.T) {
	api := &mockAuth{}
	api.On("Status", ctx).Return(&models.SessionUser{Username: "kim"}, nil)
	s := NewStore(api)
	s.Check(ctx)

	st := s.State()
	st.User.Username = "mutated"
	u, _ := s.User()
	assert.Equal(t, "kim", u.Username)
}

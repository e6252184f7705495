package service

import (
	"context"
	"testing"

	"mingle/internal/entity"
	"mingle/internal/repository/mocks"
	apperr "mingle/pkg/errors"
	"mingle/pkg/logger"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRegister(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := mocks.NewMockUserRepository(ctrl)
	svc := NewAuthService(users, logger.NewNop())

	users.EXPECT().GetByEmail(gomock.Any(), "ada@example.com").Return(nil, apperr.ErrUserNotFound)
	users.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, u *entity.User) error {
			assert.Equal(t, "Ada", u.DisplayName)
			assert.Equal(t, "ada@example.com", u.Email)
			assert.Equal(t, entity.RoleUser, u.Role)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("hunter2hunter2")))
			return nil
		})

	user, err := svc.Register(context.Background(), " Ada ", " Ada@Example.COM ", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
}

func TestRegister_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := mocks.NewMockUserRepository(ctrl)
	svc := NewAuthService(users, logger.NewNop())

	cases := []struct {
		name, displayName, email, password string
	}{
		{"blank name", "  ", "a@b.com", "hunter2hunter2"},
		{"bad email", "Ada", "not-an-email", "hunter2hunter2"},
		{"short password", "Ada", "a@b.com", "short"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.displayName, tc.email, tc.password)
			assert.Equal(t, apperr.CodeInvalidArgument, apperr.CodeOf(err))
		})
	}
}

func TestRegister_EmailTaken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := mocks.NewMockUserRepository(ctrl)
	svc := NewAuthService(users, logger.NewNop())

	users.EXPECT().GetByEmail(gomock.Any(), "ada@example.com").Return(&entity.User{Email: "ada@example.com"}, nil)

	_, err := svc.Register(context.Background(), "Ada", "ada@example.com", "hunter2hunter2")
	assert.ErrorIs(t, err, apperr.ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := mocks.NewMockUserRepository(ctrl)
	svc := NewAuthService(users, logger.NewNop())

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := &entity.User{Email: "ada@example.com", PasswordHash: string(hash)}

	users.EXPECT().GetByEmail(gomock.Any(), "ada@example.com").Return(stored, nil).Times(2)

	user, err := svc.Login(context.Background(), "Ada@Example.com", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, stored, user)

	_, err = svc.Login(context.Background(), "ada@example.com", "wrong password")
	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := mocks.NewMockUserRepository(ctrl)
	svc := NewAuthService(users, logger.NewNop())

	users.EXPECT().GetByEmail(gomock.Any(), "ghost@example.com").Return(nil, apperr.ErrUserNotFound)

	// Unknown email and wrong password are indistinguishable to the caller.
	_, err := svc.Login(context.Background(), "ghost@example.com", "whatever")
	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)
}

func TestLogin_Suspended(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := mocks.NewMockUserRepository(ctrl)
	svc := NewAuthService(users, logger.NewNop())

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	require.NoError(t, err)
	users.EXPECT().GetByEmail(gomock.Any(), "ada@example.com").
		Return(&entity.User{Email: "ada@example.com", PasswordHash: string(hash), IsSuspended: true}, nil)

	_, err = svc.Login(context.Background(), "ada@example.com", "hunter2hunter2")
	assert.ErrorIs(t, err, apperr.ErrUserSuspended)
}

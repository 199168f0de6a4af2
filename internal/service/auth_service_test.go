package service_test

import (
	"context"
	"testing"

	"github.com/dom/touchline-tactician/internal/repository/memory"
	"github.com/dom/touchline-tactician/internal/service"
	"github.com/dom/touchline-tactician/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) (*service.AuthService, *memory.CoachRepository) {
	t.Helper()
	coaches := memory.NewCoachRepository()
	return service.NewAuthService(coaches, memory.NewSessionRepository(), testutil.TestConfig(), nil), coaches
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		input   service.RegisterInput
		setup   func(t *testing.T, coaches *memory.CoachRepository)
		wantErr error
	}{
		{
			name:  "successful registration",
			input: service.RegisterInput{DisplayName: "newcoach", Password: "password123"},
		},
		{
			name:  "duplicate display name",
			input: service.RegisterInput{DisplayName: "existingcoach", Password: "password123"},
			setup: func(t *testing.T, coaches *memory.CoachRepository) {
				testutil.NewCoachBuilder().WithDisplayName("existingcoach").Build(t, coaches)
			},
			wantErr: service.ErrDisplayNameExists,
		},
		{
			name:    "short password",
			input:   service.RegisterInput{DisplayName: "shortpw", Password: "abc"},
			wantErr: service.ErrInvalidInput,
		},
		{
			name:    "missing display name",
			input:   service.RegisterInput{Password: "password123"},
			wantErr: service.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authService, coaches := newAuthService(t)
			if tt.setup != nil {
				tt.setup(t, coaches)
			}

			result, err := authService.Register(ctx, tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.input.DisplayName, result.Coach.DisplayName)
			assert.NotEmpty(t, result.AccessToken)
			assert.NotEmpty(t, result.RefreshToken)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	authService, coaches := newAuthService(t)
	ctx := context.Background()

	coach, rawPassword := testutil.NewCoachBuilder().
		WithDisplayName("logincoach").
		WithPassword("correctpassword").
		Build(t, coaches)

	tests := []struct {
		name    string
		input   service.LoginInput
		wantErr error
	}{
		{
			name:  "successful login",
			input: service.LoginInput{DisplayName: coach.DisplayName, Password: rawPassword},
		},
		{
			name:    "wrong password",
			input:   service.LoginInput{DisplayName: coach.DisplayName, Password: "wrongpassword"},
			wantErr: service.ErrInvalidCredentials,
		},
		{
			name:    "non-existent coach",
			input:   service.LoginInput{DisplayName: "nonexistent", Password: "anypassword"},
			wantErr: service.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := authService.Login(ctx, tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, coach.ID, result.Coach.ID)
			assert.NotEmpty(t, result.AccessToken)
		})
	}
}

func TestAuthService_ValidateToken(t *testing.T) {
	authService, _ := newAuthService(t)
	ctx := context.Background()

	result, err := authService.Register(ctx, service.RegisterInput{
		DisplayName: "tokencoach",
		Password:    "password123",
	})
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantErr bool
	}{
		{name: "valid token", token: result.AccessToken},
		{name: "invalid token", token: "invalid.token.here", wantErr: true},
		{name: "malformed token", token: "notavalidjwt", wantErr: true},
		{name: "empty token", token: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := authService.ValidateToken(tt.token)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			id, err := service.CoachIDFromClaims(claims)
			require.NoError(t, err)
			assert.Equal(t, result.Coach.ID, id)
		})
	}
}

func TestAuthService_GetCoachByIDAndLogout(t *testing.T) {
	authService, coaches := newAuthService(t)
	ctx := context.Background()

	coach, _ := testutil.NewCoachBuilder().Build(t, coaches)

	got, err := authService.GetCoachByID(ctx, coach.ID)
	require.NoError(t, err)
	assert.Equal(t, coach.DisplayName, got.DisplayName)

	_, err = authService.GetCoachByID(ctx, uuid.New())
	assert.ErrorIs(t, err, service.ErrCoachNotFound)

	assert.NoError(t, authService.Logout(ctx, coach.ID))
}

package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bookkeeping-api/internal/application/auth"
	"github.com/jhoicas/bookkeeping-api/internal/application/dto"
	"github.com/jhoicas/bookkeeping-api/internal/domain"
	"github.com/jhoicas/bookkeeping-api/internal/infrastructure/memory"
	"github.com/jhoicas/bookkeeping-api/pkg/jwt"
)

const secret = "test-secret"

func newAuth() *auth.AuthUseCase {
	repo := memory.NewBusinessRepository(memory.NewStore())
	return auth.NewAuthUseCase(repo, auth.JWTConfig{Secret: secret, ExpMinutes: 5, Issuer: "test"})
}

func TestRegister_TokenCarriesBusinessID(t *testing.T) {
	uc := newAuth()
	out, err := uc.Register(context.Background(), dto.RegisterRequest{
		Username: " acme ", Email: "Owner@Acme.com", Password: "secret123", BusinessName: "Acme",
	})
	require.NoError(t, err)
	assert.Equal(t, "acme", out.Username)
	assert.Equal(t, "owner@acme.com", out.Email)

	businessID, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.ID, businessID)
}

func TestRegister_Validation(t *testing.T) {
	uc := newAuth()
	cases := []dto.RegisterRequest{
		{Username: "", Email: "a@b.c", Password: "secret123", BusinessName: "x"},
		{Username: "a", Email: "not-an-email", Password: "secret123", BusinessName: "x"},
		{Username: "a", Email: "a@b.c", Password: "123", BusinessName: "x"},
		{Username: "a", Email: "a@b.c", Password: "secret123", BusinessName: "  "},
	}
	for _, in := range cases {
		_, err := uc.Register(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestRegister_Duplicate(t *testing.T) {
	uc := newAuth()
	ctx := context.Background()
	_, err := uc.Register(ctx, dto.RegisterRequest{Username: "acme", Email: "a@acme.com", Password: "secret123", BusinessName: "Acme"})
	require.NoError(t, err)

	_, err = uc.Register(ctx, dto.RegisterRequest{Username: "acme", Email: "b@acme.com", Password: "secret123", BusinessName: "Other"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	_, err = uc.Register(ctx, dto.RegisterRequest{Username: "other", Email: "A@ACME.com", Password: "secret123", BusinessName: "Other"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestLogin(t *testing.T) {
	uc := newAuth()
	ctx := context.Background()
	reg, err := uc.Register(ctx, dto.RegisterRequest{Username: "acme", Email: "a@acme.com", Password: "secret123", BusinessName: "Acme"})
	require.NoError(t, err)

	byName, err := uc.Login(ctx, dto.LoginRequest{Username: "acme", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, reg.ID, byName.ID)

	byEmail, err := uc.Login(ctx, dto.LoginRequest{Username: "a@acme.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, reg.ID, byEmail.ID)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "acme", Password: "nope-nope"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(ctx, dto.LoginRequest{Username: "ghost", Password: "secret123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(ctx, dto.LoginRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

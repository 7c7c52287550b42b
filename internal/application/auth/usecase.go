package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/bookkeeping-api/internal/application/dto"
	"github.com/jhoicas/bookkeeping-api/internal/domain"
	"github.com/jhoicas/bookkeeping-api/internal/domain/entity"
	"github.com/jhoicas/bookkeeping-api/internal/domain/repository"
	"github.com/jhoicas/bookkeeping-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login de negocios.
type AuthUseCase struct {
	businessRepo repository.BusinessRepository
	jwtCfg       JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(businessRepo repository.BusinessRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{businessRepo: businessRepo, jwtCfg: jwtCfg}
}

// Register crea el negocio: hashea password con bcrypt, persiste y devuelve un token.
// Devuelve ErrDuplicate si el username o el email ya están registrados.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.AuthResponse, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.BusinessName = strings.TrimSpace(in.BusinessName)
	if in.Username == "" || in.Email == "" || in.Password == "" || in.BusinessName == "" {
		return nil, domain.ErrInvalidInput
	}
	if !strings.Contains(in.Email, "@") || len(in.Password) < 6 {
		return nil, domain.ErrInvalidInput
	}

	exists, err := uc.businessRepo.ExistsByUsernameOrEmail(ctx, in.Username, in.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicate
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	business := &entity.Business{
		ID:           uuid.New().String(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		BusinessName: in.BusinessName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.businessRepo.Create(ctx, business); err != nil {
		return nil, err
	}
	return uc.authResponse(business)
}

// Login verifica username (o email) y password y genera el JWT.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	login := strings.TrimSpace(in.Username)
	if login == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	business, err := uc.businessRepo.FindByLogin(ctx, login)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(business.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.authResponse(business)
}

func (uc *AuthUseCase) authResponse(b *entity.Business) (*dto.AuthResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, b.ID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		ID:           b.ID,
		Username:     b.Username,
		Email:        b.Email,
		BusinessName: b.BusinessName,
		Token:        token,
	}, nil
}

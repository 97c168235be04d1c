package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"infuct.com/seguimiento/internal/entity"
	"infuct.com/seguimiento/internal/modules/auth/dto"
	"infuct.com/seguimiento/internal/modules/auth/repository"
	"infuct.com/seguimiento/pkg/apperror"
	"infuct.com/seguimiento/pkg/logger"
	"infuct.com/seguimiento/pkg/ratelimit"
	"infuct.com/seguimiento/pkg/token"
	"infuct.com/seguimiento/pkg/validator"
)

const loginAction = "login"

var errInvalidCredentials = apperror.Unauthorized("Credenciales inválidas")

type AuthService interface {
	Register(ctx context.Context, input dto.RegisterInput) (*dto.AuthResponse, error)
	Login(ctx context.Context, input dto.LoginInput, clientIP string) (*dto.AuthResponse, error)
	Me(ctx context.Context, secretaryID uint) (*entity.Secretary, error)
}

type authService struct {
	repo     repository.SecretaryRepository
	tokens   *token.Manager
	limiter  *ratelimit.Limiter
	hashCost int
}

func NewAuthService(repo repository.SecretaryRepository, tokens *token.Manager, limiter *ratelimit.Limiter) AuthService {
	return &authService{
		repo:     repo,
		tokens:   tokens,
		limiter:  limiter,
		hashCost: bcrypt.DefaultCost,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) Register(ctx context.Context, input dto.RegisterInput) (*dto.AuthResponse, error) {
	name, err := validator.RequiredText("nombre", input.Name)
	if err != nil {
		return nil, err
	}
	surname, err := validator.RequiredText("apellido", input.Surname)
	if err != nil {
		return nil, err
	}

	email := normalizeEmail(input.Email)

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, apperror.Conflict("El email ya está registrado")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.Internal(err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.hashCost)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	secretary := &entity.Secretary{
		Name:         name,
		Surname:      surname,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.repo.Create(ctx, secretary); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("El email ya está registrado")
		}
		return nil, apperror.Internal(err)
	}

	logger.Info().Uint("secretary_id", secretary.ID).Msg("secretary registered")
	return s.buildAuthResponse(secretary)
}

func (s *authService) Login(ctx context.Context, input dto.LoginInput, clientIP string) (*dto.AuthResponse, error) {
	email := normalizeEmail(input.Email)
	subject := email + "|" + clientIP

	allowed, err := s.limiter.Allowed(ctx, loginAction, subject)
	if err != nil {
		// Fail open on redis errors.
		logger.Warn().Err(err).Msg("login rate limit check failed")
		allowed = true
	}
	if !allowed {
		return nil, apperror.New(http.StatusTooManyRequests, "Demasiados intentos fallidos, intente más tarde", apperror.ErrRateLimitExceeded)
	}

	secretary, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.recordFailure(ctx, subject)
			return nil, errInvalidCredentials
		}
		return nil, apperror.Internal(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(secretary.PasswordHash), []byte(input.Password)); err != nil {
		s.recordFailure(ctx, subject)
		return nil, errInvalidCredentials
	}

	if err := s.limiter.Reset(ctx, loginAction, subject); err != nil {
		logger.Warn().Err(err).Msg("failed to reset login rate limit")
	}

	return s.buildAuthResponse(secretary)
}

func (s *authService) Me(ctx context.Context, secretaryID uint) (*entity.Secretary, error) {
	secretary, err := s.repo.FindByID(ctx, secretaryID)
	if err != nil {
		return nil, apperror.FromDB(err, "Secretaria no encontrada")
	}
	return secretary, nil
}

func (s *authService) recordFailure(ctx context.Context, subject string) {
	if err := s.limiter.Hit(ctx, loginAction, subject); err != nil {
		logger.Warn().Err(err).Msg("failed to record login attempt")
	}
}

func (s *authService) buildAuthResponse(secretary *entity.Secretary) (*dto.AuthResponse, error) {
	signed, _, err := s.tokens.Generate(secretary.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	return &dto.AuthResponse{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.tokens.TTL().Seconds()),
		Secretary:   secretary,
	}, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dom/touchline-tactician/internal/clock"
	"github.com/dom/touchline-tactician/internal/config"
	"github.com/dom/touchline-tactician/internal/domain"
	"github.com/dom/touchline-tactician/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDisplayNameExists  = errors.New("display name already exists")
	ErrCoachNotFound      = errors.New("coach not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidToken       = errors.New("invalid token")
)

const refreshTokenLifetime = 7 * 24 * time.Hour

var inputs = validator.New()

type AuthService struct {
	coachRepo   repository.CoachRepository
	sessionRepo repository.SessionRepository
	cfg         *config.Config
	clock       clock.Clock
}

func NewAuthService(coachRepo repository.CoachRepository, sessionRepo repository.SessionRepository, cfg *config.Config, clk clock.Clock) *AuthService {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &AuthService{
		coachRepo:   coachRepo,
		sessionRepo: sessionRepo,
		cfg:         cfg,
		clock:       clk,
	}
}

type RegisterInput struct {
	DisplayName string `validate:"required,min=3,max=32"`
	Password    string `validate:"required,min=8,max=72"`
}

type LoginInput struct {
	DisplayName string
	Password    string
}

type AuthResult struct {
	Coach        *domain.Coach
	AccessToken  string
	RefreshToken string
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if err := inputs.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	existing, err := s.coachRepo.GetByDisplayName(ctx, input.DisplayName)
	if err == nil && existing != nil {
		return nil, ErrDisplayNameExists
	}
	if err != nil && !errors.Is(err, repository.ErrCoachNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	coach := &domain.Coach{
		ID:           uuid.New(),
		PasswordHash: string(hashedPassword),
		DisplayName:  input.DisplayName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.coachRepo.Create(ctx, coach); err != nil {
		if errors.Is(err, repository.ErrDuplicateCoach) {
			return nil, ErrDisplayNameExists
		}
		return nil, err
	}

	return s.generateTokens(ctx, coach)
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	coach, err := s.coachRepo.GetByDisplayName(ctx, input.DisplayName)
	if err != nil {
		if errors.Is(err, repository.ErrCoachNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(coach.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.generateTokens(ctx, coach)
}

func (s *AuthService) generateTokens(ctx context.Context, coach *domain.Coach) (*AuthResult, error) {
	accessToken, err := s.generateAccessToken(coach)
	if err != nil {
		return nil, err
	}

	refreshToken := uuid.New().String()
	hashedRefresh, err := bcrypt.GenerateFromPassword([]byte(refreshToken), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	// One live session per coach.
	_ = s.sessionRepo.DeleteByCoachID(ctx, coach.ID)

	now := s.clock.Now()
	session := &domain.CoachSession{
		ID:               uuid.New(),
		CoachID:          coach.ID,
		RefreshTokenHash: string(hashedRefresh),
		ExpiresAt:        now.Add(refreshTokenLifetime),
		CreatedAt:        now,
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	return &AuthResult{
		Coach:        coach,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *AuthService) generateAccessToken(coach *domain.Coach) (string, error) {
	now := s.clock.Now()
	claims := jwt.MapClaims{
		"sub":  coach.ID.String(),
		"name": coach.DisplayName,
		"exp":  now.Add(time.Duration(s.cfg.JWTExpirationHours) * time.Hour).Unix(),
		"iat":  now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) ValidateToken(tokenString string) (*jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithTimeFunc(s.clock.Now))

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return &claims, nil
	}

	return nil, ErrInvalidToken
}

// CoachIDFromClaims extracts the coach id carried in the sub claim.
func CoachIDFromClaims(claims *jwt.MapClaims) (uuid.UUID, error) {
	sub, err := claims.GetSubject()
	if err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}
	return id, nil
}

func (s *AuthService) GetCoachByID(ctx context.Context, id uuid.UUID) (*domain.Coach, error) {
	coach, err := s.coachRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrCoachNotFound) {
		return nil, ErrCoachNotFound
	}
	return coach, err
}

func (s *AuthService) Logout(ctx context.Context, coachID uuid.UUID) error {
	return s.sessionRepo.DeleteByCoachID(ctx, coachID)
}

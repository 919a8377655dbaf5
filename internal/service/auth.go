package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/argon2"

	"github.com/RanaNomiRana/backend-afa/internal/models"
	"github.com/RanaNomiRana/backend-afa/internal/repository"
)

const (
	RoleAdmin        = "admin"
	RoleInvestigator = "investigator"
)

const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
)

type AuthService interface {
	Register(ctx context.Context, username, password, role string) (*models.Investigator, error)
	Login(ctx context.Context, username, password string) (string, time.Time, error) // Returns JWT token, expiration time, and error
	Bootstrap(ctx context.Context, username, password string) error
	ParseToken(tokenString string) (*models.Claims, error)
}

type authService struct {
	repo     repository.InvestigatorRepository
	secret   []byte
	tokenTTL time.Duration
	logger   *zap.Logger
}

func NewAuthService(repo repository.InvestigatorRepository, secret string, tokenTTL time.Duration, logger *zap.Logger) AuthService {
	return &authService{
		repo:     repo,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		logger:   logger,
	}
}

func (s *authService) Register(ctx context.Context, username, password, role string) (*models.Investigator, error) {
	existing, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing investigator: %w", err)
	}
	if existing != nil {
		return nil, ErrInvestigatorExists
	}
	if role == "" {
		role = RoleInvestigator
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	investigator := &models.Investigator{
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
	}
	if err := s.repo.Create(ctx, investigator); err != nil {
		return nil, fmt.Errorf("failed to create investigator: %w", err)
	}

	s.logger.Info("Investigator registered", zap.String("username", username), zap.String("role", role))
	return investigator, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	investigator, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to retrieve investigator: %w", err)
	}
	if investigator == nil || !verifyPassword(investigator.PasswordHash, password) {
		return "", time.Time{}, ErrInvalidCredentials
	}

	now := time.Now()
	expirationTime := now.Add(s.tokenTTL)
	claims := &models.Claims{
		Username: investigator.Username,
		Role:     investigator.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   investigator.Username,
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		s.logger.Error("Failed to generate JWT token", zap.Error(err))
		return "", time.Time{}, fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("Investigator logged in", zap.String("username", investigator.Username))
	return tokenString, expirationTime, nil
}

// Bootstrap creates the first admin account when no investigator exists yet.
func (s *authService) Bootstrap(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return nil
	}
	count, err := s.repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count investigators: %w", err)
	}
	if count > 0 {
		return nil
	}
	_, err = s.Register(ctx, username, password, RoleAdmin)
	return err
}

func (s *authService) ParseToken(tokenString string) (*models.Claims, error) {
	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// hashPassword encodes an argon2id hash as $argon2id$v=19$m=65536,t=1,p=4$salt$hash.
func hashPassword(password string) (string, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash)), nil
}

func verifyPassword(encoded, password string) bool {
	sections := strings.Split(strings.TrimPrefix(encoded, "$"), "$")
	if len(sections) != 5 || sections[0] != "argon2id" {
		return false
	}

	var version int
	if _, err := fmt.Sscanf(sections[1], "v=%d", &version); err != nil || version != argon2.Version {
		return false
	}
	var m, t uint32
	var p uint8
	if _, err := fmt.Sscanf(sections[2], "m=%d,t=%d,p=%d", &m, &t, &p); err != nil {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(sections[3])
	if err != nil {
		return false
	}
	expected, err := base64.RawStdEncoding.DecodeString(sections[4])
	if err != nil {
		return false
	}

	actual := argon2.IDKey([]byte(password), salt, t, m, p, uint32(len(expected)))
	return subtle.ConstantTimeCompare(actual, expected) == 1
}

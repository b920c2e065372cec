package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"interviewsystem/api/internal/apperrors"
	"interviewsystem/api/internal/models"
	"interviewsystem/api/internal/repositories"
)

// AuthService issues and verifies the session credential carried by the
// token cookie (or an Authorization bearer header).
type AuthService interface {
	Register(req *models.RegisterRequest) (*models.User, string, error)
	Login(req *models.LoginRequest) (*models.User, string, error)
	VerifyToken(tokenStr string) (uuid.UUID, error)
}

type authService struct {
	userRepo  repositories.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, tokenTTL time.Duration) AuthService {
	return &authService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

// Register implements AuthService.
func (s *authService) Register(req *models.RegisterRequest) (*models.User, string, error) {
	var fields []string
	if strings.TrimSpace(req.Name) == "" {
		fields = append(fields, "name")
	}
	if strings.TrimSpace(req.Email) == "" {
		fields = append(fields, "email")
	}
	if len(req.Password) < 8 {
		fields = append(fields, "password")
	}
	if len(fields) > 0 {
		return nil, "", &apperrors.ValidationError{Fields: fields}
	}

	if _, err := s.userRepo.FindByEmail(req.Email); err == nil {
		return nil, "", &apperrors.ValidationError{Fields: []string{"email"}}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, "", &apperrors.StoreError{Err: err}
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login implements AuthService.
func (s *authService) Login(req *models.LoginRequest) (*models.User, string, error) {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, "", &apperrors.ValidationError{Fields: []string{"email", "password"}}
	}

	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, "", &apperrors.AuthError{Reason: "invalid credentials"}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", &apperrors.AuthError{Reason: "invalid credentials"}
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// VerifyToken implements AuthService.
func (s *authService) VerifyToken(tokenStr string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, &apperrors.AuthError{Reason: "invalid token"}
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return uuid.Nil, &apperrors.AuthError{Reason: "user id not found in token"}
	}

	userID, err := uuid.Parse(subject)
	if err != nil {
		return uuid.Nil, &apperrors.AuthError{Reason: "user id not found in token"}
	}
	return userID, nil
}

func (s *authService) issueToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

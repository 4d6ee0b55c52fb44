package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/relief-next/internal/config"
	"github.com/relief-next/internal/models"
	"github.com/relief-next/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserDisabled       = errors.New("user account disabled")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// AuthClaims JWT 负载
type AuthClaims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService 登录鉴权服务
type AuthService struct {
	userRepo repository.UserRepository
	cfg      *config.JWTConfig
}

// NewAuthService 创建鉴权服务
func NewAuthService(userRepo repository.UserRepository, cfg *config.JWTConfig) *AuthService {
	return &AuthService{userRepo: userRepo, cfg: cfg}
}

// Login 邮箱密码登录，签发 JWT
func (s *AuthService) Login(email, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrUserFetchFailed, err)
	}
	if user == nil {
		return "", nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", nil, ErrUserDisabled
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// GenerateToken 为用户签发 JWT
func (s *AuthService) GenerateToken(user *models.User) (string, error) {
	expireHours := 24
	if s.cfg != nil && s.cfg.ExpireHours > 0 {
		expireHours = s.cfg.ExpireHours
	}
	now := time.Now()
	claims := AuthClaims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expireHours) * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret()))
}

// ParseToken 解析并校验 JWT
func (s *AuthService) ParseToken(tokenString string) (*AuthClaims, error) {
	claims := &AuthClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secret()), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// GetUser 根据 ID 获取用户
func (s *AuthService) GetUser(userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUserFetchFailed, err)
	}
	return user, nil
}

func (s *AuthService) secret() string {
	if s.cfg != nil && s.cfg.SecretKey != "" {
		return s.cfg.SecretKey
	}
	return "change-me-in-production"
}

package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/ottlabs/ott-platform/internal/config"
	"github.com/ottlabs/ott-platform/internal/dto"
	"github.com/ottlabs/ott-platform/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrAccountTaken       = errors.New("email or phone already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired refresh token")
	ErrUserNotFound       = errors.New("user not found")
)

var planPrices = map[string]int{
	models.TierBasic:   499,
	models.TierPremium: 1499,
}

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

// Register creates the user plus their activity and storage-analytics rows,
// and a one-year subscription record for paid tiers, all in one transaction.
func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if req.Username == "" || req.Email == "" || req.Phone == "" {
		return nil, errors.New("username, email and phone are required")
	}
	if len(req.Password) < 8 {
		return nil, errors.New("password must be at least 8 characters")
	}
	tier := req.Subscription
	if tier == "" {
		tier = models.TierFree
	}
	if tier != models.TierFree && tier != models.TierBasic && tier != models.TierPremium {
		return nil, errors.New("invalid subscription tier")
	}

	var existing models.User
	if err := s.db.Where("email = ? OR phone = ?", req.Email, req.Phone).First(&existing).Error; err == nil {
		return nil, ErrAccountTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:               uuid.New(),
		Username:         req.Username,
		Email:            req.Email,
		Phone:            req.Phone,
		Password:         string(hash),
		SubscriptionTier: tier,
	}

	now := time.Now()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		activity := models.UserActivity{
			ID:         uuid.New(),
			UserID:     user.ID,
			LastLogin:  now,
			LoginCount: 1,
			Active:     true,
		}
		if err := tx.Create(&activity).Error; err != nil {
			return fmt.Errorf("failed to create activity record: %w", err)
		}
		analytics := models.StorageAnalytics{
			ID:             uuid.New(),
			UserID:         user.ID,
			LastCalculated: now,
		}
		if err := tx.Create(&analytics).Error; err != nil {
			return fmt.Errorf("failed to create storage analytics: %w", err)
		}
		if price, paid := planPrices[tier]; paid {
			sub := models.Subscription{
				ID:            uuid.New(),
				UserID:        user.ID,
				PlanType:      tier,
				StartDate:     now,
				EndDate:       now.AddDate(1, 0, 0),
				AmountPaid:    price,
				PaymentStatus: "COMPLETED",
				AutoRenew:     true,
			}
			if err := tx.Create(&sub).Error; err != nil {
				return fmt.Errorf("failed to create subscription: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.generateTokenPair(&user)
}

// Login matches the identifier against email or phone. A successful login
// advances last_login, bumps login_count and clears the notified flag: a new
// login starts a new inactivity episode.
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	var user models.User
	if err := s.db.Where("email = ? OR phone = ?", req.Email, req.Email).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	err := s.db.Model(&models.UserActivity{}).
		Where("user_id = ?", user.ID).
		Updates(map[string]interface{}{
			"last_login":  time.Now(),
			"login_count": gorm.Expr("login_count + 1"),
			"notified":    false,
			"notified_at": nil,
		}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to update activity: %w", err)
	}

	return s.generateTokenPair(&user)
}

func (s *AuthService) Refresh(req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	tokenHash := hashToken(req.RefreshToken)

	var stored models.RefreshToken
	if err := s.db.Where("token_hash = ? AND revoked = false", tokenHash).First(&stored).Error; err != nil {
		return nil, ErrInvalidToken
	}

	if time.Now().After(stored.ExpiresAt) {
		s.db.Model(&stored).Update("revoked", true)
		return nil, ErrInvalidToken
	}

	s.db.Model(&stored).Update("revoked", true)

	var user models.User
	if err := s.db.First(&user, "id = ?", stored.UserID).Error; err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	return s.generateTokenPair(&user)
}

func (s *AuthService) Logout(req *dto.LogoutRequest) error {
	tokenHash := hashToken(req.RefreshToken)
	return s.db.Model(&models.RefreshToken{}).
		Where("token_hash = ?", tokenHash).
		Update("revoked", true).Error
}

// DeleteAccount is the self-service variant of account deletion: same
// cascading delete, gated on the caller's password.
func (s *AuthService) DeleteAccount(userID uuid.UUID, password string) error {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return ErrUserNotFound
	}

	if password == "" {
		return errors.New("password is required")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Delete(&user).Error
	})
}

func (s *AuthService) generateTokenPair(user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.generateRefreshToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: dto.UserResponse{
			ID:               user.ID,
			Username:         user.Username,
			Email:            user.Email,
			SubscriptionTier: user.SubscriptionTier,
		},
	}, nil
}

func (s *AuthService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"tier":  user.SubscriptionTier,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(s.cfg.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) generateRefreshToken(user *models.User) (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	rawToken := base64.URLEncoding.EncodeToString(rawBytes)
	tokenHash := hashToken(rawToken)

	record := models.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: tokenHash,
		ExpiresAt: time.Now().Add(s.cfg.JWTRefreshExpiry),
	}

	if err := s.db.Create(&record).Error; err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return rawToken, nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}

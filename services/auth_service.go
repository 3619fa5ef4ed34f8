package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"lumen-cms/config"
	"lumen-cms/models"
	"lumen-cms/repositories"
)

type AuthService interface {
	Register(req models.RegisterRequest) (*models.AuthResponse, error)
	Login(req models.LoginRequest) (*models.AuthResponse, error)
	GetUserByID(id uint) (*models.User, error)
	GetPreference(userID uint) (*models.Preference, error)
	SetTheme(userID uint, theme string) (*models.Preference, error)
}

type authService struct {
	userRepo repositories.UserRepository
	prefRepo repositories.PreferenceRepository
}

func NewAuthService(userRepo repositories.UserRepository, prefRepo repositories.PreferenceRepository) AuthService {
	return &authService{userRepo: userRepo, prefRepo: prefRepo}
}

func (s *authService) Register(req models.RegisterRequest) (*models.AuthResponse, error) {
	existingUser, err := s.userRepo.GetByEmail(req.Email)
	if err == nil && existingUser != nil && existingUser.ID != 0 {
		return nil, errors.New("user already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = models.RoleWriter
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
		Role:     role,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{Token: token, User: *user}, nil
}

func (s *authService) Login(req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("invalid credentials")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid credentials")
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{Token: token, User: *user}, nil
}

func (s *authService) GetUserByID(id uint) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// GetPreference falls back to the default theme for a user with no
// stored preference yet.
func (s *authService) GetPreference(userID uint) (*models.Preference, error) {
	pref, err := s.prefRepo.GetByUserID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.Preference{UserID: userID, Theme: "light"}, nil
	}
	if err != nil {
		return nil, err
	}
	return pref, nil
}

func (s *authService) SetTheme(userID uint, theme string) (*models.Preference, error) {
	pref := &models.Preference{UserID: userID, Theme: theme}
	if err := s.prefRepo.Upsert(pref); err != nil {
		return nil, err
	}
	return s.prefRepo.GetByUserID(userID)
}

func (s *authService) generateToken(user *models.User) (string, error) {
	now := time.Now()

	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      now.Add(config.JWTExpiration).Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(config.JWTSecret)
}

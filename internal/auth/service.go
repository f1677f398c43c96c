package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mintevents/event-portal-backend/config"
	"github.com/mintevents/event-portal-backend/utils"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrWeakPassword       = errors.New("password must be at least 8 characters with upper, lower and digit")
	ErrInvalidRole        = errors.New("invalid role")
)

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type Service interface {
	Register(input RegisterInput) error
	Login(input LoginInput) (*TokenPair, Profile, error)
	Refresh(refreshToken string) (string, error)
	GetUserByID(userID uint) (User, error)

	// ResolveProfile is the identity resolver: it maps an authenticated
	// principal to a role-augmented profile, degrading to the user role on
	// transient lookup failure.
	ResolveProfile(userID uint) (Profile, error)

	RequestPasswordReset(email string) error
	ResetPassword(token string, newPassword string) error
	ChangePassword(userID uint, oldPassword, newPassword string) error

	// Admin user management
	ListUsers(limit, offset int, search string) ([]User, int64, error)
	CreateUser(actor Profile, input CreateUserInput) (*User, error)
	UpdateUserRole(actor Profile, userID uint, role string) error
	IssueTempPassword(actor Profile, userID uint) error
	DeleteUser(actor Profile, userID uint) error
}

type service struct {
	repo          Repository
	accessSecret  string
	refreshSecret string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewService(r Repository, cfg *config.Config) Service {
	return &service{
		repo:          r,
		accessSecret:  cfg.JWTAccessSecret,
		refreshSecret: cfg.JWTRefreshSecret,
		accessTTL:     time.Duration(cfg.JWTAccessTTLHours) * time.Hour,
		refreshTTL:    time.Duration(cfg.JWTRefreshTTLHours) * time.Hour,
	}
}

// =============================
// Register
// =============================

type RegisterInput struct {
	FullName string
	Email    string
	Password string
	Phone    string
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func (s *service) Register(in RegisterInput) error {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if !emailRe.MatchString(email) {
		return errors.New("invalid email address")
	}
	if err := checkPasswordStrength(in.Password); err != nil {
		return err
	}

	if _, err := s.repo.FindByEmail(email); err == nil {
		return ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	// Self-service signups always start as plain users; officer, head and
	// admin accounts are issued by an admin.
	user := &User{
		FullName:        strings.TrimSpace(in.FullName),
		Email:           email,
		Phone:           strings.TrimSpace(in.Phone),
		PasswordHash:    string(hash),
		Role:            RoleUser.String(),
		PasswordChanged: true,
	}

	return s.repo.Create(user)
}

// =============================
// Login
// =============================

type LoginInput struct {
	Email    string
	Password string
}

func (s *service) Login(in LoginInput) (*TokenPair, Profile, error) {
	user, err := s.repo.FindByEmail(strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, Profile{}, errors.New("couldn't find your account")
		}
		return nil, Profile{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, Profile{}, ErrInvalidCredentials
	}

	profile := NewProfile(user)

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, Profile{}, err
	}
	refreshToken, err := s.generateRefreshToken(user)
	if err != nil {
		return nil, Profile{}, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, profile, nil
}

func (s *service) generateAccessToken(user *User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    ParseRole(user.Role).String(),
		"exp":     time.Now().Add(s.accessTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.accessSecret))
}

func (s *service) generateRefreshToken(user *User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(s.refreshTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.refreshSecret))
}

// =============================
// Refresh
// =============================

func (s *service) Refresh(refreshToken string) (string, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.refreshSecret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return "", errors.New("invalid refresh token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["user_id"] == nil {
		return "", errors.New("invalid token claims")
	}

	userID := uint(claims["user_id"].(float64))
	user, err := s.repo.FindByID(userID)
	if err != nil {
		return "", ErrUserNotFound
	}

	return s.generateAccessToken(&user)
}

// =============================
// Identity resolution
// =============================

func (s *service) ResolveProfile(userID uint) (Profile, error) {
	user, err := s.repo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Profile{}, ErrUserNotFound
		}
		// Transient store failure: availability wins over strictness for
		// this metadata, so sign-in proceeds with the lowest role.
		log.Printf("⚠️ Profile lookup failed for user %d, degrading to user role: %v", userID, err)
		return DegradedProfile(userID, ""), nil
	}
	return NewProfile(&user), nil
}

func (s *service) GetUserByID(userID uint) (User, error) {
	return s.repo.FindByID(userID)
}

// =============================
// Password reset
// =============================

func (s *service) RequestPasswordReset(email string) error {
	user, err := s.repo.FindByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return ErrUserNotFound
	}

	resetToken := generateSecureToken()
	key := fmt.Sprintf("reset_token:%s", resetToken)

	if err := utils.SetToken(key, fmt.Sprint(user.ID), 15*time.Minute); err != nil {
		return errors.New("could not save reset token")
	}

	if err := utils.SendResetLink(user.Email, resetToken); err != nil {
		return errors.New("failed to send email")
	}

	return nil
}

func (s *service) ResetPassword(token string, newPassword string) error {
	key := fmt.Sprintf("reset_token:%s", token)
	val, err := utils.GetToken(key)
	if err != nil {
		return errors.New("invalid or expired token")
	}

	var userID uint
	if _, err := fmt.Sscan(val, &userID); err != nil {
		return errors.New("invalid token data")
	}

	user, err := s.repo.FindByID(userID)
	if err != nil {
		return ErrUserNotFound
	}

	if err := checkPasswordStrength(newPassword); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.PasswordHash = string(hash)
	user.PasswordChanged = true
	if err := s.repo.Update(&user); err != nil {
		return errors.New("failed to update password")
	}

	_ = utils.DeleteToken(key)
	return nil
}

func (s *service) ChangePassword(userID uint, oldPassword, newPassword string) error {
	user, err := s.repo.FindByID(userID)
	if err != nil {
		return ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrInvalidCredentials
	}
	if err := checkPasswordStrength(newPassword); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.PasswordHash = string(hash)
	user.PasswordChanged = true
	return s.repo.Update(&user)
}

// =============================
// Admin user management
// =============================

type CreateUserInput struct {
	FullName string
	Email    string
	Password string
	Phone    string
	Role     string
}

func (s *service) ListUsers(limit, offset int, search string) ([]User, int64, error) {
	return s.repo.ListUsers(limit, offset, search)
}

func (s *service) CreateUser(actor Profile, in CreateUserInput) (*User, error) {
	if !actor.Role.IsAdmin() {
		return nil, errors.New("only admins can create users")
	}
	if !ValidRole(in.Role) {
		return nil, ErrInvalidRole
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if !emailRe.MatchString(email) {
		return nil, errors.New("invalid email address")
	}
	if err := checkPasswordStrength(in.Password); err != nil {
		return nil, err
	}
	if _, err := s.repo.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &User{
		FullName:     strings.TrimSpace(in.FullName),
		Email:        email,
		Phone:        strings.TrimSpace(in.Phone),
		PasswordHash: string(hash),
		Role:         ParseRole(in.Role).String(),
		// Admin-issued accounts must change the password on first login.
		PasswordChanged: false,
	}

	if err := s.repo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) UpdateUserRole(actor Profile, userID uint, role string) error {
	if !actor.Role.IsAdmin() {
		return errors.New("only admins can change roles")
	}
	if !ValidRole(role) {
		return ErrInvalidRole
	}
	if err := s.repo.UpdateRole(userID, ParseRole(role).String()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func (s *service) IssueTempPassword(actor Profile, userID uint) error {
	if !actor.Role.IsAdmin() {
		return errors.New("only admins can reset passwords")
	}

	user, err := s.repo.FindByID(userID)
	if err != nil {
		return ErrUserNotFound
	}

	tempPassword := generateSecureToken()[:12]
	hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.PasswordHash = string(hash)
	user.PasswordChanged = false
	if err := s.repo.Update(&user); err != nil {
		return err
	}

	if err := utils.SendTempPasswordEmail(user.Email, tempPassword); err != nil {
		log.Printf("⚠️ Temp password email failed for %s: %v", user.Email, err)
	}
	return nil
}

func (s *service) DeleteUser(actor Profile, userID uint) error {
	if !actor.Role.IsAdmin() {
		return errors.New("only admins can delete users")
	}
	if actor.UserID == userID {
		return errors.New("admins cannot delete their own account")
	}
	return s.repo.Delete(userID)
}

// =============================
// Helpers
// =============================

func generateSecureToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// checkPasswordStrength enforces the portal's password meter server-side.
func checkPasswordStrength(password string) error {
	if len(password) < 8 {
		return ErrWeakPassword
	}
	var hasUpper, hasLower, hasDigit bool
	for _, c := range password {
		switch {
		case unicode.IsUpper(c):
			hasUpper = true
		case unicode.IsLower(c):
			hasLower = true
		case unicode.IsDigit(c):
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return ErrWeakPassword
	}
	return nil
}

package services

import (
	"context"
	"errors"
	"fiber-admin/config"
	"fiber-admin/models"
	"fiber-admin/repositories"
	"fiber-admin/utils/xerrors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type LoginInput struct {
	User   string `json:"user" validate:"required"`
	Passwd string `json:"passwd" validate:"required"`
	Type   string `json:"type"`
}

type ClientInfo struct {
	IP        string
	UserAgent string
}

// Claims adalah isi JWT yang dipakai AuthMiddleware.
type Claims struct {
	UserID    uint
	SessionID string
	Role      string
	ExpiresAt time.Time
}

type AuthService struct {
	users  *repositories.UserRepository
	menus  *MenuService
	log    *zap.Logger
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewAuthService(users *repositories.UserRepository, menus *MenuService, log *zap.Logger) *AuthService {
	return &AuthService{
		users:  users,
		menus:  menus,
		log:    log,
		secret: []byte(config.JWTSecret),
		ttl:    time.Duration(config.JWTExpiration) * time.Second,
		now:    time.Now,
	}
}

func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

// Login checks the credentials, opens a new session and returns a signed
// access token.
func (s *AuthService) Login(ctx context.Context, input LoginInput, client ClientInfo) (string, error) {
	login := strings.TrimSpace(input.User)
	if login == "" || input.Passwd == "" {
		return "", xerrors.Validation("user and passwd are required")
	}

	user, err := s.users.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			s.log.Info("login failed", zap.String("user", login), zap.String("reason", "USER_NOT_FOUND"))
			return "", xerrors.ErrInvalidCredentials
		}
		return "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Passwd)) != nil {
		s.log.Info("login failed", zap.String("user", login), zap.String("reason", "WRONG_PASSWORD"))
		return "", xerrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", xerrors.ErrInactiveUser
	}

	now := s.now()
	session := models.UserSession{
		SessionID:      uuid.NewString(),
		UserID:         user.ID,
		IPAddress:      client.IP,
		UserAgent:      client.UserAgent,
		IsActive:       true,
		LastActivityAt: now,
		ExpiresAt:      now.Add(s.ttl),
	}
	if err := s.users.CreateSession(ctx, &session); err != nil {
		return "", err
	}

	token, err := s.signToken(*user, session)
	if err != nil {
		return "", err
	}
	s.log.Info("login success", zap.Uint("user_id", user.ID), zap.String("ip", client.IP))
	return token, nil
}

func (s *AuthService) signToken(user models.User, session models.UserSession) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":    user.ID,
		"session_id": session.SessionID,
		"role":       user.Role,
		"exp":        session.ExpiresAt.Unix(),
		"jti":        uuid.NewString(),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken verifies signature and expiry of an HS256 token.
func (s *AuthService) ParseToken(raw string) (Claims, error) {
	token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return Claims{}, xerrors.ErrInvalidSession
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, xerrors.ErrInvalidSession
	}
	userID, ok := mc["user_id"].(float64)
	if !ok || userID <= 0 {
		return Claims{}, xerrors.ErrInvalidSession
	}
	sessionID, ok := mc["session_id"].(string)
	if !ok || sessionID == "" {
		return Claims{}, xerrors.ErrInvalidSession
	}
	role, _ := mc["role"].(string)
	exp, err := mc.GetExpirationTime()
	if err != nil || exp == nil {
		return Claims{}, xerrors.ErrInvalidSession
	}

	return Claims{
		UserID:    uint(userID),
		SessionID: sessionID,
		Role:      role,
		ExpiresAt: exp.Time,
	}, nil
}

// ValidateSession memastikan session masih aktif lalu update last_activity_at.
func (s *AuthService) ValidateSession(ctx context.Context, claims Claims) error {
	now := s.now()
	session, err := s.users.GetActiveSession(ctx, claims.SessionID, now)
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			return xerrors.ErrInvalidSession
		}
		return err
	}
	if session.UserID != claims.UserID {
		return xerrors.ErrInvalidSession
	}
	return s.users.TouchSession(ctx, claims.SessionID, now)
}

func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return xerrors.ErrInvalidSession
	}
	if err := s.users.DeactivateSession(ctx, sessionID, s.now()); err != nil {
		return err
	}
	s.log.Info("logout", zap.String("session_id", sessionID))
	return nil
}

func (s *AuthService) Profile(ctx context.Context, userID uint) (UserProfile, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return UserProfile{}, err
	}
	tree, err := s.menus.GetMenuTree(ctx, config.MenuSystem)
	if err != nil {
		return UserProfile{}, err
	}
	return ProfileFromUser(*user, tree), nil
}

func (s *AuthService) ProfileImage(ctx context.Context, userID uint) (string, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return user.ImageProfile, nil
}

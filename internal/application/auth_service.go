package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/bilguun-dev/courseware-api/config"
	"github.com/bilguun-dev/courseware-api/internal/domain/entity"
	"github.com/bilguun-dev/courseware-api/internal/domain/repository"
	"github.com/bilguun-dev/courseware-api/pkg/helpers"
	"github.com/bilguun-dev/courseware-api/pkg/mailer"
)

// AuthService handles registration, login sessions, and password reset.
type AuthService struct {
	Users  repository.UserRepository
	JWT    *helpers.JWTManager
	Redis  *redis.Client
	Pub    *helpers.RabbitPublisher
	Cfg    *config.Config
	Logger *logrus.Logger
}

func NewAuthService(users repository.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client, pub *helpers.RabbitPublisher, cfg *config.Config, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, JWT: jwt, Redis: rdb, Pub: pub, Cfg: cfg, Logger: logger}
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

func sessionKey(userID string) string {
	return "user:session:" + userID
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// Register creates a STUDENT account. The role is fixed at registration;
// admins are promoted out of band. The password is bcrypt-hashed before it
// touches storage and is never logged.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Email:        in.Email,
		PasswordHash: hash,
		Name:         in.Name,
		Role:         entity.RoleStudent,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

// Authenticate validates email/password and returns the user without issuing tokens.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// IssueTokens generates access/refresh tokens and records a session in Redis.
func (s *AuthService) IssueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	sid := uuid.NewString()
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID, string(u.Role), sid)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate access token failed")
		}
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID, string(u.Role), sid)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate refresh token failed")
		}
		return TokenPair{}, err
	}

	if s.Redis != nil {
		fields := map[string]any{
			"user_id":    u.ID,
			"email":      u.Email,
			"name":       u.Name,
			"role":       string(u.Role),
			"sid":        sid,
			"created_at": nowRFC3339(),
		}
		key := sessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, fields)
		pipe.Expire(ctx, key, 24*time.Hour)
		if _, rErr := pipe.Exec(ctx); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}

	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

type LoginResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResponse, TokenPair, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, TokenPair{}, err
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	resp := &LoginResponse{UserID: u.ID, Email: u.Email, Name: u.Name, Role: string(u.Role)}
	return resp, pair, nil
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (TokenPair, string, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	u, err := s.Users.GetByID(ctx, claims.UserID)
	if err != nil || u == nil {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	// Validate current session id matches the token's sid
	if s.Redis != nil {
		key := sessionKey(u.ID)
		data, rErr := s.Redis.HGetAll(ctx, key).Result()
		if rErr != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			return TokenPair{}, "", ErrInvalidCredentials
		}
	}
	// Rotate session id and tokens
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return TokenPair{}, "", err
	}
	return pair, u.ID, nil
}

// Logout drops the Redis session so stale access tokens stop validating.
func (s *AuthService) Logout(ctx context.Context, userID string) {
	if s.Redis != nil && userID != "" {
		s.Redis.Del(ctx, sessionKey(userID))
	}
}

// ListUsers returns every account, newest first, for the admin dashboard.
func (s *AuthService) ListUsers(ctx context.Context) ([]*entity.User, error) {
	return s.Users.List(ctx)
}

func (s *AuthService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}

// RequestPasswordReset issues a single-use, time-boxed token for the account
// and queues the reset email. It returns no indication of whether the email
// exists; callers must respond identically either way so the endpoint
// cannot be used to enumerate accounts.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return
	}
	tok, err := helpers.GenToken(32)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).Error("reset token generation failed")
		}
		return
	}
	expires := time.Now().Add(s.Cfg.ResetTokenTTL)
	if err := s.Users.SetResetToken(ctx, u.ID, tok, expires); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("store reset token failed")
		}
		return
	}

	link := s.Cfg.ResetPasswordURL + "?token=" + tok
	if s.Pub != nil && s.Cfg.MailSendEnabled {
		job := mailer.NewPasswordResetJob(u.Email, u.Name, link, s.Cfg.ResetTokenTTL.String())
		if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("failed to publish reset email job")
		}
	} else if s.Logger != nil {
		// Development fallback mirrors what the email would carry.
		s.Logger.WithField("user_id", u.ID).Debugf("password reset link: %s", link)
	}
}

// ConfirmPasswordReset consumes the token: validates existence and expiry,
// rehashes the credential, and clears the token columns in the same update
// so a replay of the token fails.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	u, err := s.Users.GetByResetToken(ctx, token)
	if err != nil || u == nil {
		return ErrInvalidResetToken
	}
	if u.ResetTokenExpiresAt == nil || u.ResetTokenExpiresAt.Before(time.Now()) {
		return ErrInvalidResetToken
	}
	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.Users.UpdatePasswordAndClearReset(ctx, u.ID, hash); err != nil {
		return err
	}
	// Invalidate any live session; the credential changed.
	s.Logout(ctx, u.ID)
	return nil
}

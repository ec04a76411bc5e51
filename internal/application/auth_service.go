package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/KokoroRay/Shopflow-E-commerce-sub000/internal/domain/entity"
	repo "github.com/KokoroRay/Shopflow-E-commerce-sub000/internal/domain/repository"
	"github.com/KokoroRay/Shopflow-E-commerce-sub000/internal/domain/valueobject"
	"github.com/KokoroRay/Shopflow-E-commerce-sub000/pkg/helpers"
	"github.com/KokoroRay/Shopflow-E-commerce-sub000/pkg/mailer"
	"github.com/KokoroRay/Shopflow-E-commerce-sub000/pkg/mailer/templates"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrResetNotActive     = errors.New("password reset token is not active")
	ErrResetCodeMismatch  = errors.New("password reset code does not match")
)

// AuthService handles operator login, token refresh and the OTP-based
// password reset flow. Reset tokens live in Redis keyed by normalized
// email; reset emails go out through the RabbitMQ email queue.
type AuthService struct {
	Users      repo.UserRepository
	JWT        *helpers.JWTManager
	Redis      *redis.Client
	EmailQueue *helpers.RabbitPublisher
	Logger     *logrus.Logger
	AppName    string
	ResetTTL   int // minutes
}

func NewAuthService(users repo.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client, emailQueue *helpers.RabbitPublisher, logger *logrus.Logger, appName string, resetTTLMinutes int) *AuthService {
	if resetTTLMinutes <= 0 {
		resetTTLMinutes = entity.DefaultResetExpiryMinutes
	}
	return &AuthService{
		Users:      users,
		JWT:        jwt,
		Redis:      rdb,
		EmailQueue: emailQueue,
		Logger:     logger,
		AppName:    appName,
		ResetTTL:   resetTTLMinutes,
	}
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

type LoginResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

func sessionKey(userID string) string { return "auth:session:" + userID }
func resetKey(email string) string    { return "auth:reset:" + email }

func nowRFC3339() string { return time.Now().UTC().Format(time.RFC3339Nano) }

// Authenticate validates email/password and returns the user without
// issuing tokens. The email is normalized the same way it was stored.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	addr, err := valueobject.NewEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	u, err := s.Users.GetByEmail(ctx, addr.Value())
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// IssueTokens generates an access/refresh pair and records the session
// in Redis so refresh can verify the session id.
func (s *AuthService) IssueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	sid := uuid.NewString()
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID, sid)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID, sid)
	if err != nil {
		return TokenPair{}, err
	}

	if s.Redis != nil {
		key := sessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"user_id":    u.ID,
			"email":      u.Email,
			"name":       u.Name,
			"sid":        sid,
			"created_at": nowRFC3339(),
		})
		pipe.Expire(ctx, key, 24*time.Hour)
		if _, rErr := pipe.Exec(ctx); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}

	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
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
	return &LoginResponse{UserID: u.ID, Email: u.Email, Name: u.Name}, pair, nil
}

// Refresh rotates the session id and token pair when the refresh token
// carries the currently recorded session id.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (TokenPair, string, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	u, err := s.Users.GetByID(ctx, claims.UserID)
	if err != nil || u == nil {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	if s.Redis != nil {
		data, rErr := s.Redis.HGetAll(ctx, sessionKey(u.ID)).Result()
		if rErr != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			return TokenPair{}, "", ErrInvalidCredentials
		}
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return TokenPair{}, "", err
	}
	return pair, u.ID, nil
}

// resetTokenRecord is the Redis snapshot of a PasswordResetToken.
type resetTokenRecord struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Email     string     `json:"email"`
	Code      string     `json:"code"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt time.Time  `json:"expires_at"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	Attempts  int        `json:"attempts"`
}

func recordFromToken(t *entity.PasswordResetToken) resetTokenRecord {
	return resetTokenRecord{
		ID:        t.ID(),
		UserID:    t.UserID(),
		Email:     t.Email().Value(),
		Code:      t.Code(),
		CreatedAt: t.CreatedAt(),
		ExpiresAt: t.ExpiresAt(),
		UsedAt:    t.UsedAt(),
		Attempts:  t.Attempts(),
	}
}

func tokenFromRecord(rec resetTokenRecord) *entity.PasswordResetToken {
	return entity.RehydratePasswordResetToken(
		rec.ID, rec.UserID,
		valueobject.RehydrateEmail(rec.Email),
		valueobject.RehydrateOtpCode(rec.Code, rec.CreatedAt, rec.ExpiresAt),
		rec.CreatedAt, rec.ExpiresAt, rec.UsedAt, rec.Attempts,
	)
}

func (s *AuthService) saveResetToken(ctx context.Context, t *entity.PasswordResetToken) error {
	// Keep the record around past expiry so attempt counting survives
	// probes against a just-expired token.
	ttl := t.TimeToExpiry() + 5*time.Minute
	return helpers.RedisSetJSON(ctx, s.Redis, resetKey(t.Email().Value()), recordFromToken(t), ttl)
}

func (s *AuthService) loadResetToken(ctx context.Context, email string) (*entity.PasswordResetToken, error) {
	var rec resetTokenRecord
	found, err := helpers.RedisGetJSON(ctx, s.Redis, resetKey(email), &rec)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrResetNotActive
	}
	return tokenFromRecord(rec), nil
}

// RequestPasswordReset issues a fresh reset token and queues the OTP
// email. An unknown email reports success without doing anything, so
// the endpoint cannot be used to probe for accounts.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	addr, err := valueobject.NewEmail(email)
	if err != nil {
		return nil
	}
	u, err := s.Users.GetByEmail(ctx, addr.Value())
	if err != nil || u == nil {
		return nil
	}

	token, err := entity.GeneratePasswordResetToken(u.ID, addr, s.ResetTTL)
	if err != nil {
		return err
	}
	if err := s.saveResetToken(ctx, token); err != nil {
		return err
	}

	s.queueEmail(ctx, mailer.EmailJob{
		To:       addr.Value(),
		Subject:  templates.Subjects[templates.ResetOTP],
		Template: templates.ResetOTP,
		Data: templates.ToMap(templates.NewEmailData(
			s.AppName, u.Name, addr.Value(),
			templates.WithCode(token.Code()),
			templates.WithExpiresAt(token.ExpiresAt()),
		)),
	})
	return nil
}

// VerifyPasswordReset burns one attempt checking the code. The updated
// attempt counter is persisted whether or not the code matched.
func (s *AuthService) VerifyPasswordReset(ctx context.Context, email, code string) (int, error) {
	addr, err := valueobject.NewEmail(email)
	if err != nil {
		return 0, ErrResetNotActive
	}
	token, err := s.loadResetToken(ctx, addr.Value())
	if err != nil {
		return 0, err
	}
	ok := token.Verify(code)
	if err := s.saveResetToken(ctx, token); err != nil {
		return 0, err
	}
	if !ok {
		if !token.IsActive() {
			return token.RemainingAttempts(), ErrResetNotActive
		}
		return token.RemainingAttempts(), ErrResetCodeMismatch
	}
	return token.RemainingAttempts(), nil
}

// CompletePasswordReset verifies the code, consumes the token and
// stores the bcrypt hash of the new password.
func (s *AuthService) CompletePasswordReset(ctx context.Context, email, code, newPassword string) error {
	addr, err := valueobject.NewEmail(email)
	if err != nil {
		return ErrResetNotActive
	}
	token, err := s.loadResetToken(ctx, addr.Value())
	if err != nil {
		return err
	}
	ok := token.Verify(code)
	if saveErr := s.saveResetToken(ctx, token); saveErr != nil {
		return saveErr
	}
	if !ok {
		if !token.IsActive() {
			return ErrResetNotActive
		}
		return ErrResetCodeMismatch
	}
	if err := token.MarkUsed(); err != nil {
		return ErrResetNotActive
	}

	u, err := s.Users.GetByID(ctx, token.UserID())
	if err != nil || u == nil {
		return ErrUserNotFound
	}
	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return err
	}
	u.Password = hash
	if err := s.Users.Update(ctx, u); err != nil {
		return err
	}
	if err := helpers.RedisDel(ctx, s.Redis, resetKey(addr.Value())); err != nil && s.Logger != nil {
		s.Logger.WithError(err).Warn("reset token cleanup failed")
	}

	s.queueEmail(ctx, mailer.EmailJob{
		To:       addr.Value(),
		Subject:  templates.Subjects[templates.PasswordChanged],
		Template: templates.PasswordChanged,
		Data:     templates.ToMap(templates.NewEmailData(s.AppName, u.Name, addr.Value())),
	})
	return nil
}

func (s *AuthService) queueEmail(ctx context.Context, job mailer.EmailJob) {
	if s.EmailQueue == nil {
		return
	}
	if err := s.EmailQueue.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("template", job.Template).Warn("email enqueue failed")
	}
}

package service

import (
	"Community/internal/api/dto"
	"Community/internal/pkg/security"
	"Community/internal/pkg/session"
	"Community/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// Principal 已认证的调用方
type Principal struct {
	UserID uint64
	Role   string
}

type SessionService interface {
	Login(ctx context.Context, req *dto.LoginDTO) (string, *dto.LoginResultDTO, error)
	Authenticate(ctx context.Context, token string) (*Principal, error)
	Logout(ctx context.Context, token string) error
	TTL() time.Duration
}

type sessionServiceImpl struct {
	store             session.Store
	userRepo          repository.UserRepo
	ttl               time.Duration
	defaultProfileURL string
}

func NewSessionService(store session.Store, userRepo repository.UserRepo, ttl time.Duration, defaultProfileURL string) SessionService {
	return &sessionServiceImpl{
		store:             store,
		userRepo:          userRepo,
		ttl:               ttl,
		defaultProfileURL: defaultProfileURL,
	}
}

func (s *sessionServiceImpl) TTL() time.Duration {
	return s.ttl
}

// Login 校验邮箱密码并创建会话，返回会话 token
func (s *sessionServiceImpl) Login(ctx context.Context, req *dto.LoginDTO) (string, *dto.LoginResultDTO, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, ErrUserNotFound
	}

	if err = security.CheckPasswordHash(req.Password, user.Password); err != nil {
		if errors.Is(err, security.ErrInvalidCredentials) {
			return "", nil, ErrBadPassword
		}
		return "", nil, err
	}

	now := time.Now()
	record := &session.Record{
		SessionID:      uuid.NewString(),
		UserID:         user.ID,
		Role:           user.Role,
		CreatedAt:      now,
		LastAccessedAt: now,
	}
	if err = s.store.Save(ctx, record, s.ttl); err != nil {
		return "", nil, err
	}

	log.InfoContext(ctx, "user logged in", "user_id", user.ID)

	return record.SessionID, &dto.LoginResultDTO{
		UserID:       user.ID,
		Email:        user.Email,
		Nickname:     user.Nickname,
		ProfileImage: user.ProfileImageURL(s.defaultProfileURL),
	}, nil
}

// Authenticate 校验会话并续期，滑动过期
func (s *sessionServiceImpl) Authenticate(ctx context.Context, token string) (*Principal, error) {
	if token == "" {
		return nil, ErrInvalidSession
	}

	record, err := s.store.Get(ctx, token)
	if err != nil {
		if errors.Is(err, session.ErrMalformedRecord) {
			log.WarnContext(ctx, "discarding malformed session record", "err", err)
			return nil, ErrInvalidSession
		}
		return nil, err
	}
	if record == nil {
		return nil, ErrInvalidSession
	}

	record.LastAccessedAt = time.Now()
	if err = s.store.Save(ctx, record, s.ttl); err != nil {
		return nil, err
	}

	return &Principal{UserID: record.UserID, Role: record.Role}, nil
}

// Logout 幂等，会话不存在时同样返回成功
func (s *sessionServiceImpl) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.store.Delete(ctx, token)
}

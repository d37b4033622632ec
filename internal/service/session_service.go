package service

import (
	"context"
	"strings"
	"time"

	"admitiq/internal/dto"
	"admitiq/internal/models"
	"admitiq/internal/repository"
	"admitiq/pkg/auth"

	"go.uber.org/zap"
)

// SessionGauge tracks how many sessions are held in memory.
type SessionGauge interface {
	SetActiveSessions(n int)
}

type SessionService struct {
	sessions   *repository.SessionRepository
	jwtManager *auth.JWTManager
	chat       *ChatService
	gauge      SessionGauge
	logger     *zap.Logger
}

func NewSessionService(
	sessions *repository.SessionRepository,
	jwtManager *auth.JWTManager,
	chat *ChatService,
	gauge SessionGauge,
	logger *zap.Logger,
) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{
		sessions:   sessions,
		jwtManager: jwtManager,
		chat:       chat,
		gauge:      gauge,
		logger:     logger,
	}
}

// CreateSession opens a conversation for role. An empty role means student.
func (s *SessionService) CreateSession(ctx context.Context, role string) (*dto.SessionResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	role = strings.TrimSpace(role)
	if role == "" {
		role = string(models.RoleStudent)
	}

	session := s.sessions.Create(models.Role(role))

	token, err := s.jwtManager.GenerateToken(session.ID.String(), role)
	if err != nil {
		s.sessions.Delete(session.ID)
		return nil, err
	}

	s.reportActive()
	s.logger.Info("Session created",
		zap.String("session_id", session.ID.String()),
		zap.String("role", role),
	)

	return &dto.SessionResponse{
		SessionID:    session.ID.String(),
		Role:         role,
		AccessToken:  token,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.jwtManager.GetTokenDuration().Seconds()),
		Welcome:      s.chat.Welcome(),
		QuickReplies: s.chat.QuickReplies(),
	}, nil
}

// RunSweeper evicts idle sessions every interval until ctx is cancelled.
func (s *SessionService) RunSweeper(ctx context.Context, interval, ttl time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := s.sessions.Sweep(ttl); removed > 0 {
				s.logger.Info("Idle sessions evicted", zap.Int("removed", removed))
			}
			s.reportActive()
		}
	}
}

func (s *SessionService) reportActive() {
	if s.gauge != nil {
		s.gauge.SetActiveSessions(s.sessions.Count())
	}
}

package services

import (
	"context"
	"time"

	"goldtrack/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// TokenPurgeSchedule runs the refresh token cleanup at 03:00 every day
const TokenPurgeSchedule = "0 3 * * *"

// CronService runs the scheduled maintenance jobs
type CronService struct {
	cron          *cron.Cron
	refreshTokens repositories.RefreshTokenRepository
	log           *zap.Logger
}

// NewCronService creates the scheduler in the shop's timezone
func NewCronService(refreshTokens repositories.RefreshTokenRepository, loc *time.Location, log *zap.Logger) *CronService {
	if loc == nil {
		loc = time.UTC
	}
	return &CronService{
		cron:          cron.New(cron.WithLocation(loc)),
		refreshTokens: refreshTokens,
		log:           log,
	}
}

// Start registers the jobs and starts the scheduler
func (s *CronService) Start() error {
	if _, err := s.cron.AddFunc(TokenPurgeSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		s.PurgeExpiredTokens(ctx)
	}); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info("cron started", zap.String("token_purge", TokenPurgeSchedule))
	return nil
}

// Stop stops the scheduler and waits for a running job to finish
func (s *CronService) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info("cron stopped")
}

// PurgeExpiredTokens deletes refresh tokens past their expiry
func (s *CronService) PurgeExpiredTokens(ctx context.Context) {
	n, err := s.refreshTokens.DeleteExpired(ctx)
	if err != nil {
		s.log.Error("failed to purge expired refresh tokens", zap.Error(err))
		return
	}
	s.log.Info("expired refresh tokens purged", zap.Int64("deleted", n))
}

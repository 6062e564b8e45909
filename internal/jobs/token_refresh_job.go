package job

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/hilit308-creator/autosocial/internal/models"
	"github.com/hilit308-creator/autosocial/internal/repository"
	"github.com/hilit308-creator/autosocial/internal/service"
)

type TokenRefreshJob struct {
	sr repository.SocialAccountRepository
	cs service.ConnectService
}

func NewTokenRefreshJob(sr repository.SocialAccountRepository, cs service.ConnectService) *TokenRefreshJob {
	return &TokenRefreshJob{
		sr: sr,
		cs: cs,
	}
}

// RefreshTokens renews every connected account whose token expires in
// the next half hour.
func (c *TokenRefreshJob) RefreshTokens() {
	ctx := context.Background()

	currentTime := time.Now()
	timeIn30Minutes := currentTime.Add(30 * time.Minute)

	accounts, err := c.sr.ListExpiringBetween(ctx, currentTime, timeIn30Minutes)
	if err != nil {
		slog.Info(err.Error())
		return
	}

	var wg sync.WaitGroup

	concurrencyLimit := 10
	semaphore := make(chan struct{}, concurrencyLimit)

	for _, acc := range accounts {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(acc *models.SocialAccount) {
			defer wg.Done()
			defer func() { <-semaphore }()

			if err := c.cs.RefreshToken(ctx, acc); err != nil {
				slog.Info("unable to refresh token", "platform", acc.Platform, "account_id", acc.ID, "error", err)
			}
		}(acc)
	}

	wg.Wait()
}

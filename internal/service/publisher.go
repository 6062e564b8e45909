package service

import (
	"context"
	"fmt"

	"github.com/hilit308-creator/autosocial/internal/models"
	"github.com/hilit308-creator/autosocial/internal/repository"
	"github.com/hilit308-creator/autosocial/internal/transfer"
	"github.com/hilit308-creator/autosocial/pkg/utils"
)

// PlatformPublisher pushes one post to one network. Implementations
// report failure through the result, never by panicking, so one broken
// adapter cannot take down a dispatch.
type PlatformPublisher interface {
	Platform() string
	Publish(ctx context.Context, post *models.Post) transfer.PublishResult
}

func failure(platform string, err error) transfer.PublishResult {
	return transfer.PublishResult{
		Platform: platform,
		Success:  false,
		Error:    err.Error(),
	}
}

func success(platform, remoteID, postURL string) transfer.PublishResult {
	return transfer.PublishResult{
		Platform: platform,
		Success:  true,
		PostID:   remoteID,
		PostURL:  postURL,
	}
}

// resolveToken prefers the connected account's stored token and falls
// back to the env-configured one. Stored tokens are encrypted at rest.
func resolveToken(ctx context.Context, sa repository.SocialAccountRepository, platform, envToken, secretKey string) (token, accountID string, err error) {
	if sa != nil {
		acc, err := sa.GetByPlatform(ctx, platform)
		if err != nil {
			return "", "", err
		}
		if acc != nil && acc.AccessToken != "" {
			decrypted, err := utils.Decrypt(acc.AccessToken, []byte(secretKey))
			if err != nil {
				return "", "", fmt.Errorf("error decrypting %s token: %w", platform, err)
			}
			return decrypted, acc.AccountID, nil
		}
	}

	if envToken == "" {
		return "", "", fmt.Errorf("no %s credentials configured", platform)
	}
	return envToken, "", nil
}

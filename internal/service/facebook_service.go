package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	config "github.com/hilit308-creator/autosocial/configs"
	"github.com/hilit308-creator/autosocial/internal/models"
	"github.com/hilit308-creator/autosocial/internal/repository"
	"github.com/hilit308-creator/autosocial/internal/transfer"
)

type FacebookService interface {
	PlatformPublisher
}

type facebookService struct {
	cfg     config.Config
	sa      repository.SocialAccountRepository
	baseURL string
}

func NewFacebookService(cfg config.Config, sa repository.SocialAccountRepository) FacebookService {
	return &facebookService{
		cfg:     cfg,
		sa:      sa,
		baseURL: "https://graph.facebook.com/v21.0",
	}
}

func (s *facebookService) Platform() string {
	return models.PlatformFacebook
}

// Publish posts to the page feed, or to the photos edge when the post
// carries an image. Facebook accepts text-only posts, so media is
// optional here.
func (s *facebookService) Publish(ctx context.Context, post *models.Post) transfer.PublishResult {
	accessToken, pageID, err := resolveToken(ctx, s.sa, models.PlatformFacebook, s.cfg.Credentials.FacebookAccessToken, s.cfg.SecretKey)
	if err != nil {
		slog.Info(err.Error())
		return failure(models.PlatformFacebook, err)
	}
	if pageID == "" {
		pageID = s.cfg.Credentials.FacebookPageID
	}
	if pageID == "" {
		return failure(models.PlatformFacebook, fmt.Errorf("no facebook page id configured"))
	}

	message := post.FacebookCaption

	var url string
	payload := map[string]interface{}{
		"access_token": accessToken,
	}
	if post.MediaURL != "" && !strings.HasPrefix(post.MediaType, "video") {
		url = fmt.Sprintf("%s/%s/photos", s.baseURL, pageID)
		payload["url"] = post.MediaURL
		payload["caption"] = message
	} else {
		url = fmt.Sprintf("%s/%s/feed", s.baseURL, pageID)
		payload["message"] = message
	}

	result, err := postJSON(ctx, url, payload)
	if err != nil {
		slog.Info(err.Error())
		return failure(models.PlatformFacebook, err)
	}
	if result.ID == "" {
		return failure(models.PlatformFacebook, fmt.Errorf("no post ID returned from Facebook"))
	}

	return success(models.PlatformFacebook, result.ID, fmt.Sprintf("https://www.facebook.com/%s", result.ID))
}

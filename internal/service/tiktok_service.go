package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	config "github.com/hilit308-creator/autosocial/configs"
	"github.com/hilit308-creator/autosocial/internal/models"
	"github.com/hilit308-creator/autosocial/internal/repository"
	"github.com/hilit308-creator/autosocial/internal/transfer"
)

// tiktokCaptionLimit is the video title length TikTok accepts on the
// direct post endpoint.
const tiktokCaptionLimit = 150

type TiktokService interface {
	PlatformPublisher
}

type tiktokService struct {
	cfg     config.Config
	sa      repository.SocialAccountRepository
	baseURL string
}

func NewTiktokService(cfg config.Config, sa repository.SocialAccountRepository) TiktokService {
	return &tiktokService{
		cfg:     cfg,
		sa:      sa,
		baseURL: "https://open.tiktokapis.com/v2",
	}
}

func (s *tiktokService) Platform() string {
	return models.PlatformTiktok
}

// Publish initializes a direct video post with TikTok pulling the file
// from our public media URL. TikTok only takes video, so anything else
// fails before any network call.
func (s *tiktokService) Publish(ctx context.Context, post *models.Post) transfer.PublishResult {
	if post.MediaURL == "" || !strings.HasPrefix(post.MediaType, "video") {
		return failure(models.PlatformTiktok, fmt.Errorf("tiktok requires a video"))
	}

	accessToken, _, err := resolveToken(ctx, s.sa, models.PlatformTiktok, s.cfg.Credentials.TiktokAccessToken, s.cfg.SecretKey)
	if err != nil {
		slog.Info(err.Error())
		return failure(models.PlatformTiktok, err)
	}

	caption := truncate(captionWithHashtags(post.TiktokCaption, post.TiktokHashtags), tiktokCaptionLimit)

	payload := map[string]interface{}{
		"post_info": map[string]interface{}{
			"title":         caption,
			"privacy_level": "PUBLIC_TO_EVERYONE",
		},
		"source_info": map[string]interface{}{
			"source":    "PULL_FROM_URL",
			"video_url": post.MediaURL,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return failure(models.PlatformTiktok, fmt.Errorf("error marshalling payload: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.baseURL+"/post/publish/video/init/", bytes.NewBuffer(body))
	if err != nil {
		return failure(models.PlatformTiktok, fmt.Errorf("error creating request: %w", err))
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return failure(models.PlatformTiktok, fmt.Errorf("HTTP request error: %w", err))
	}
	defer resp.Body.Close()

	var result transfer.TiktokPublishInit
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return failure(models.PlatformTiktok, fmt.Errorf("error parsing response: %w", err))
	}

	if resp.StatusCode != http.StatusOK || (result.Error.Code != "" && result.Error.Code != "ok") {
		err := fmt.Errorf("error response from TikTok: %s (status code: %d)", result.Error.Message, resp.StatusCode)
		slog.Info(err.Error())
		return failure(models.PlatformTiktok, err)
	}

	if result.Data.PublishID == "" {
		return failure(models.PlatformTiktok, fmt.Errorf("no publish ID returned from TikTok"))
	}

	return success(models.PlatformTiktok, result.Data.PublishID, "")
}

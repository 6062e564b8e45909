package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	config "github.com/hilit308-creator/autosocial/configs"
	"github.com/hilit308-creator/autosocial/internal/models"
	"github.com/hilit308-creator/autosocial/internal/repository"
	"github.com/hilit308-creator/autosocial/internal/transfer"
)

const (
	instagramContainerPollAttempts = 30
	instagramContainerPollInterval = 2 * time.Second
)

type InstagramService interface {
	PlatformPublisher
}

type instagramService struct {
	cfg     config.Config
	sa      repository.SocialAccountRepository
	baseURL string
	poll    time.Duration
}

func NewInstagramService(cfg config.Config, sa repository.SocialAccountRepository) InstagramService {
	return &instagramService{
		cfg:     cfg,
		sa:      sa,
		baseURL: "https://graph.instagram.com/v21.0",
		poll:    instagramContainerPollInterval,
	}
}

func (s *instagramService) Platform() string {
	return models.PlatformInstagram
}

// Publish creates a media container, waits for Instagram to finish
// processing it, then publishes it. Instagram has no text-only posts, so
// a post without media fails before any network call.
func (s *instagramService) Publish(ctx context.Context, post *models.Post) transfer.PublishResult {
	if post.MediaURL == "" {
		return failure(models.PlatformInstagram, fmt.Errorf("instagram requires an image or video"))
	}

	accessToken, userID, err := resolveToken(ctx, s.sa, models.PlatformInstagram, s.cfg.Credentials.InstagramAccessToken, s.cfg.SecretKey)
	if err != nil {
		slog.Info(err.Error())
		return failure(models.PlatformInstagram, err)
	}
	if userID == "" {
		userID = s.cfg.Credentials.InstagramUserID
	}
	if userID == "" {
		return failure(models.PlatformInstagram, fmt.Errorf("no instagram user id configured"))
	}

	caption := captionWithHashtags(post.InstagramCaption, post.InstagramHashtags)

	containerID, err := s.createContainer(ctx, userID, caption, post.MediaURL, post.MediaType, accessToken)
	if err != nil {
		slog.Info(err.Error())
		return failure(models.PlatformInstagram, err)
	}

	if err := s.waitForContainer(ctx, containerID, accessToken); err != nil {
		slog.Info(err.Error())
		return failure(models.PlatformInstagram, err)
	}

	mediaID, err := s.publishContainer(ctx, userID, containerID, accessToken)
	if err != nil {
		slog.Info(err.Error())
		return failure(models.PlatformInstagram, err)
	}

	return success(models.PlatformInstagram, mediaID, fmt.Sprintf("https://www.instagram.com/p/%s", mediaID))
}

func (s *instagramService) createContainer(ctx context.Context, userID, caption, mediaURL, mediaType, accessToken string) (string, error) {
	url := fmt.Sprintf("%s/%s/media", s.baseURL, userID)

	payload := map[string]interface{}{
		"caption":      caption,
		"access_token": accessToken,
	}
	if strings.HasPrefix(mediaType, "video") {
		payload["media_type"] = "REELS"
		payload["video_url"] = mediaURL
	} else {
		payload["image_url"] = mediaURL
	}

	result, err := postJSON(ctx, url, payload)
	if err != nil {
		return "", fmt.Errorf("error creating media container: %w", err)
	}
	if result.ID == "" {
		return "", fmt.Errorf("no container ID returned from Instagram")
	}
	return result.ID, nil
}

// waitForContainer polls until the container reaches FINISHED. Video
// containers can take a while to process; image containers usually
// finish on the first check.
func (s *instagramService) waitForContainer(ctx context.Context, containerID, accessToken string) error {
	url := fmt.Sprintf("%s/%s?fields=status_code&access_token=%s", s.baseURL, containerID, accessToken)

	for i := 0; i < instagramContainerPollAttempts; i++ {
		req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
		if err != nil {
			return fmt.Errorf("error creating request: %w", err)
		}

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return fmt.Errorf("HTTP request error: %w", err)
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("error reading container status: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			return graphError(resp.StatusCode, respBody)
		}

		var status transfer.InstagramContainerStatus
		if err := json.Unmarshal(respBody, &status); err != nil {
			return fmt.Errorf("error parsing container status: %w", err)
		}

		switch status.StatusCode {
		case "FINISHED":
			return nil
		case "ERROR", "EXPIRED":
			return fmt.Errorf("container %s ended in status %s", containerID, status.StatusCode)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.poll):
		}
	}

	return fmt.Errorf("container %s not ready after %d checks", containerID, instagramContainerPollAttempts)
}

func (s *instagramService) publishContainer(ctx context.Context, userID, containerID, accessToken string) (string, error) {
	url := fmt.Sprintf("%s/%s/media_publish", s.baseURL, userID)
	payload := map[string]interface{}{
		"creation_id":  containerID,
		"access_token": accessToken,
	}

	result, err := postJSON(ctx, url, payload)
	if err != nil {
		return "", fmt.Errorf("error publishing container: %w", err)
	}
	if result.ID == "" {
		return "", fmt.Errorf("no media ID returned from Instagram")
	}
	return result.ID, nil
}

// postJSON posts a JSON payload and decodes the Graph-style {"id": ...}
// reply, surfacing the error envelope on non-200s.
func postJSON(ctx context.Context, url string, payload map[string]interface{}) (*transfer.InstagramContainerStatus, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("error marshalling payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request error: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, graphError(resp.StatusCode, respBody)
	}

	var result transfer.InstagramContainerStatus
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("error parsing response: %w", err)
	}
	return &result, nil
}

// graphError surfaces the Graph API error envelope when present, falling
// back to the bare status code.
func graphError(statusCode int, body []byte) error {
	var errResp transfer.InstagramErrorResponse
	if json.Unmarshal(body, &errResp) == nil && errResp.Error.Message != "" {
		return fmt.Errorf("instagram error: %s (code %d)", errResp.Error.Message, errResp.Error.Code)
	}
	return fmt.Errorf("unexpected status code from Instagram: %d", statusCode)
}

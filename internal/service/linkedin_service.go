package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	config "github.com/hilit308-creator/autosocial/configs"
	"github.com/hilit308-creator/autosocial/internal/models"
	"github.com/hilit308-creator/autosocial/internal/repository"
	"github.com/hilit308-creator/autosocial/internal/transfer"
)

type LinkedinService interface {
	PlatformPublisher
}

type linkedinService struct {
	cfg     config.Config
	sa      repository.SocialAccountRepository
	baseURL string
}

func NewLinkedinService(cfg config.Config, sa repository.SocialAccountRepository) LinkedinService {
	return &linkedinService{
		cfg:     cfg,
		sa:      sa,
		baseURL: "https://api.linkedin.com/v2",
	}
}

func (s *linkedinService) Platform() string {
	return models.PlatformLinkedin
}

// Publish creates a text UGC post on behalf of the configured member.
// Media is deliberately left to a link in the commentary; the asset
// upload flow is not wired.
func (s *linkedinService) Publish(ctx context.Context, post *models.Post) transfer.PublishResult {
	accessToken, personID, err := resolveToken(ctx, s.sa, models.PlatformLinkedin, s.cfg.Credentials.LinkedinAccessToken, s.cfg.SecretKey)
	if err != nil {
		slog.Info(err.Error())
		return failure(models.PlatformLinkedin, err)
	}
	if personID == "" {
		personID = s.cfg.Credentials.LinkedinPersonID
	}
	if personID == "" {
		return failure(models.PlatformLinkedin, fmt.Errorf("no linkedin person id configured"))
	}

	text := post.LinkedinCaption
	if post.MediaURL != "" {
		text = text + "\n\n" + post.MediaURL
	}

	payload := map[string]interface{}{
		"author":         fmt.Sprintf("urn:li:person:%s", personID),
		"lifecycleState": "PUBLISHED",
		"specificContent": map[string]interface{}{
			"com.linkedin.ugc.ShareContent": map[string]interface{}{
				"shareCommentary": map[string]string{
					"text": text,
				},
				"shareMediaCategory": "NONE",
			},
		},
		"visibility": map[string]string{
			"com.linkedin.ugc.MemberNetworkVisibility": "PUBLIC",
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return failure(models.PlatformLinkedin, fmt.Errorf("error marshalling payload: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.baseURL+"/ugcPosts", bytes.NewBuffer(body))
	if err != nil {
		return failure(models.PlatformLinkedin, fmt.Errorf("error creating request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("X-Restli-Protocol-Version", "2.0.0")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return failure(models.PlatformLinkedin, fmt.Errorf("HTTP request error: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		err := fmt.Errorf("error response from LinkedIn: %s (status code: %d)", respBody, resp.StatusCode)
		slog.Info(err.Error())
		return failure(models.PlatformLinkedin, err)
	}

	// The created URN comes back in a response header, not the body.
	urn := resp.Header.Get("x-restli-id")
	if urn == "" {
		var result struct {
			ID string `json:"id"`
		}
		if json.NewDecoder(resp.Body).Decode(&result) == nil {
			urn = result.ID
		}
	}
	if urn == "" {
		return failure(models.PlatformLinkedin, fmt.Errorf("no post URN returned from LinkedIn"))
	}

	return success(models.PlatformLinkedin, urn, fmt.Sprintf("https://www.linkedin.com/feed/update/%s", urn))
}

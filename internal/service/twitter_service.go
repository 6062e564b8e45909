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

const tweetTextLimit = 280

type TwitterService interface {
	PostTweet(ctx context.Context, text string) (*transfer.PublishResult, error)
}

type twitterService struct {
	cfg     config.Config
	sa      repository.SocialAccountRepository
	baseURL string
}

func NewTwitterService(cfg config.Config, sa repository.SocialAccountRepository) TwitterService {
	return &twitterService{
		cfg:     cfg,
		sa:      sa,
		baseURL: "https://api.twitter.com/2",
	}
}

// PostTweet publishes a standalone tweet. Text over the limit is
// truncated rather than rejected.
func (s *twitterService) PostTweet(ctx context.Context, text string) (*transfer.PublishResult, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: text is required", ErrValidation)
	}

	accessToken, _, err := resolveToken(ctx, s.sa, models.PlatformTwitter, s.cfg.Credentials.TwitterBearerToken, s.cfg.SecretKey)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	payload := map[string]string{
		"text": truncate(text, tweetTextLimit),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("error marshalling payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.baseURL+"/tweets", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("HTTP request error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		err := fmt.Errorf("error response from Twitter: %s (status code: %d)", respBody, resp.StatusCode)
		slog.Info(err.Error())
		return nil, err
	}

	var result struct {
		Data struct {
			ID   string `json:"id"`
			Text string `json:"text"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("error parsing response: %w", err)
	}

	res := success(models.PlatformTwitter, result.Data.ID, fmt.Sprintf("https://twitter.com/i/web/status/%s", result.Data.ID))
	return &res, nil
}

package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	config "github.com/hilit308-creator/autosocial/configs"
	"github.com/hilit308-creator/autosocial/internal/models"
	"github.com/hilit308-creator/autosocial/internal/repository"
	"github.com/hilit308-creator/autosocial/internal/transfer"
)

type YoutubeService interface {
	PlatformPublisher
}

type youtubeService struct {
	cfg config.Config
	sa  repository.SocialAccountRepository
}

func NewYoutubeService(cfg config.Config, sa repository.SocialAccountRepository) YoutubeService {
	return &youtubeService{
		cfg: cfg,
		sa:  sa,
	}
}

func (s *youtubeService) Platform() string {
	return models.PlatformYoutube
}

// Publish uploads the post's video as a public YouTube upload. The file
// is pulled from object storage to a temp file first since the upload
// API wants a seekable reader.
func (s *youtubeService) Publish(ctx context.Context, post *models.Post) transfer.PublishResult {
	if post.MediaURL == "" || !strings.HasPrefix(post.MediaType, "video") {
		return failure(models.PlatformYoutube, fmt.Errorf("youtube requires a video"))
	}

	accessToken, _, err := resolveToken(ctx, s.sa, models.PlatformYoutube, s.cfg.Credentials.YoutubeAccessToken, s.cfg.SecretKey)
	if err != nil {
		slog.Info(err.Error())
		return failure(models.PlatformYoutube, err)
	}

	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken}))
	yt, err := youtube.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		slog.Info(err.Error())
		return failure(models.PlatformYoutube, fmt.Errorf("error creating YouTube client: %w", err))
	}

	tempFile, err := downloadToTempFile(ctx, post.MediaURL)
	if err != nil {
		slog.Info(err.Error())
		return failure(models.PlatformYoutube, err)
	}
	defer os.Remove(tempFile)

	file, err := os.Open(tempFile)
	if err != nil {
		return failure(models.PlatformYoutube, fmt.Errorf("error opening video file: %w", err))
	}
	defer file.Close()

	video := &youtube.Video{
		Snippet: &youtube.VideoSnippet{
			Title:       post.YoutubeTitle,
			Description: post.YoutubeDescription,
			Tags:        splitCSV(post.YoutubeTags),
			CategoryId:  "22",
		},
		Status: &youtube.VideoStatus{
			PrivacyStatus: "public",
		},
	}

	call := yt.Videos.Insert([]string{"snippet", "status"}, video)
	response, err := call.Media(file).Do()
	if err != nil {
		slog.Info(err.Error())
		return failure(models.PlatformYoutube, fmt.Errorf("error uploading video: %w", err))
	}

	return success(models.PlatformYoutube, response.Id, fmt.Sprintf("https://youtu.be/%s", response.Id))
}

func downloadToTempFile(ctx context.Context, mediaURL string) (string, error) {
	tempFile, err := os.CreateTemp("", "upload-*.mp4")
	if err != nil {
		return "", fmt.Errorf("error creating temporary file: %w", err)
	}
	defer tempFile.Close()

	req, err := http.NewRequestWithContext(ctx, "GET", mediaURL, nil)
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("error downloading video: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected response status: %d", resp.StatusCode)
	}

	if _, err := io.Copy(tempFile, resp.Body); err != nil {
		return "", fmt.Errorf("error saving video to temporary file: %w", err)
	}

	return tempFile.Name(), nil
}

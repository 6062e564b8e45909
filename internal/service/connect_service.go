package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	config "github.com/hilit308-creator/autosocial/configs"
	"github.com/hilit308-creator/autosocial/internal/models"
	"github.com/hilit308-creator/autosocial/internal/repository"
	"github.com/hilit308-creator/autosocial/internal/transfer"
	"github.com/hilit308-creator/autosocial/pkg/utils"
)

type ConnectService interface {
	AuthURL(platform string) (string, error)
	HandleCallback(ctx context.Context, platform, code string) error
	ListAccounts(ctx context.Context) ([]*models.SocialAccount, error)
	Disconnect(ctx context.Context, platform string) error
	RefreshToken(ctx context.Context, acc *models.SocialAccount) error
}

type connectService struct {
	cfg config.Config
	sa  repository.SocialAccountRepository
}

func NewConnectService(cfg config.Config, sa repository.SocialAccountRepository) ConnectService {
	return &connectService{
		cfg: cfg,
		sa:  sa,
	}
}

func (s *connectService) googleOAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     s.cfg.GoogleClientID,
		ClientSecret: s.cfg.GoogleClientSecret,
		RedirectURL:  s.cfg.GoogleRedirectURI,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/youtube.upload",
		},
		Endpoint: google.Endpoint,
	}
}

func (s *connectService) AuthURL(platform string) (string, error) {
	switch platform {
	case models.PlatformInstagram:
		params := url.Values{}
		params.Set("client_id", s.cfg.InstagramClientID)
		params.Set("redirect_uri", s.cfg.InstagramRedirectURI)
		params.Set("response_type", "code")
		params.Set("scope", "instagram_business_basic,instagram_business_content_publish")
		return "https://www.instagram.com/oauth/authorize?" + params.Encode(), nil
	case models.PlatformTiktok:
		params := url.Values{}
		params.Set("client_key", s.cfg.TiktokClientKey)
		params.Set("redirect_uri", s.cfg.TiktokRedirectURI)
		params.Set("response_type", "code")
		params.Set("scope", "user.info.basic,video.publish")
		return "https://www.tiktok.com/v2/auth/authorize/?" + params.Encode(), nil
	case models.PlatformYoutube:
		return s.googleOAuthConfig().AuthCodeURL("state", oauth2.AccessTypeOffline), nil
	}
	return "", fmt.Errorf("%w: platform %q does not support oauth connect", ErrValidation, platform)
}

func (s *connectService) HandleCallback(ctx context.Context, platform, code string) error {
	if code == "" {
		err := errors.New("code is empty")
		slog.Info(err.Error())
		return fmt.Errorf("%w: %s", ErrValidation, err)
	}

	switch platform {
	case models.PlatformInstagram:
		return s.instagramCallback(ctx, code)
	case models.PlatformTiktok:
		return s.tiktokCallback(ctx, code)
	case models.PlatformYoutube:
		return s.youtubeCallback(ctx, code)
	}
	return fmt.Errorf("%w: platform %q does not support oauth connect", ErrValidation, platform)
}

func (s *connectService) instagramCallback(ctx context.Context, code string) error {
	token, err := s.exchangeInstagramCode(ctx, code)
	if err != nil {
		return err
	}

	userInfo, err := s.instagramUserInfo(ctx, token.AccessToken)
	if err != nil {
		return err
	}

	return s.storeAccount(ctx, &models.SocialAccount{
		Platform:        models.PlatformInstagram,
		AccountID:       userInfo.UserID,
		AccountName:     userInfo.Name,
		AccountUsername: userInfo.Username,
	}, token.AccessToken, token.AccessToken, token.ExpiresAt)
}

// exchangeInstagramCode runs the short-lived then long-lived token
// exchange in one go.
func (s *connectService) exchangeInstagramCode(ctx context.Context, code string) (*transfer.InstagramToken, error) {
	data := url.Values{}
	data.Set("client_id", s.cfg.InstagramClientID)
	data.Set("client_secret", s.cfg.InstagramClientSecret)
	data.Set("grant_type", "authorization_code")
	data.Set("redirect_uri", s.cfg.InstagramRedirectURI)
	data.Set("code", code)

	resp, err := http.Post(
		"https://api.instagram.com/oauth/access_token",
		"application/x-www-form-urlencoded",
		strings.NewReader(data.Encode()),
	)
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("failed to get short-lived token: %v", err)
	}
	defer resp.Body.Close()

	var short struct {
		AccessToken string `json:"access_token"`
		UserID      int    `json:"user_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&short); err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("failed to decode token response: %v", err)
	}

	longURL := fmt.Sprintf(
		"https://graph.instagram.com/access_token?grant_type=ig_exchange_token&client_secret=%s&access_token=%s",
		s.cfg.InstagramClientSecret,
		short.AccessToken,
	)
	longResp, err := http.Get(longURL)
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("failed to get long-lived token: %v", err)
	}
	defer longResp.Body.Close()

	var long struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(longResp.Body).Decode(&long); err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("failed to decode long-lived token response: %v", err)
	}

	return &transfer.InstagramToken{
		UserID:      short.UserID,
		AccessToken: long.AccessToken,
		ExpiresAt:   GetExpiresAt(long.ExpiresIn),
	}, nil
}

func (s *connectService) instagramUserInfo(ctx context.Context, accessToken string) (*transfer.InstagramUserInfo, error) {
	reqURL := fmt.Sprintf(
		"https://graph.instagram.com/me?fields=id,username,name&access_token=%s",
		accessToken,
	)

	resp, err := http.Get(reqURL)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer resp.Body.Close()

	var userInfo transfer.InstagramUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return &userInfo, nil
}

func (s *connectService) tiktokCallback(ctx context.Context, code string) error {
	data := url.Values{}
	data.Set("client_key", s.cfg.TiktokClientKey)
	data.Set("client_secret", s.cfg.TiktokClientSecret)
	data.Set("code", code)
	data.Set("grant_type", "authorization_code")
	data.Set("redirect_uri", s.cfg.TiktokRedirectURI)

	resp, err := http.Post(
		"https://open.tiktokapis.com/v2/oauth/token/",
		"application/x-www-form-urlencoded",
		strings.NewReader(data.Encode()),
	)
	if err != nil {
		slog.Info(err.Error())
		return fmt.Errorf("failed to get tiktok token: %v", err)
	}
	defer resp.Body.Close()

	var token transfer.TiktokTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		slog.Info(err.Error())
		return fmt.Errorf("failed to decode tiktok token response: %v", err)
	}
	if token.AccessToken == "" {
		return errors.New("no access token returned from tiktok")
	}

	userInfo, err := s.tiktokUserInfo(ctx, token.AccessToken)
	if err != nil {
		return err
	}

	return s.storeAccount(ctx, &models.SocialAccount{
		Platform:        models.PlatformTiktok,
		AccountID:       token.OpenID,
		AccountName:     userInfo.Data.User.DisplayName,
		AccountUsername: userInfo.Data.User.Username,
	}, token.AccessToken, token.RefreshToken, GetExpiresAt(token.ExpiresIn))
}

func (s *connectService) tiktokUserInfo(ctx context.Context, accessToken string) (*transfer.TiktokUserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, "GET",
		"https://open.tiktokapis.com/v2/user/info/?fields=open_id,display_name,username", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer resp.Body.Close()

	var userInfo transfer.TiktokUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return &userInfo, nil
}

func (s *connectService) youtubeCallback(ctx context.Context, code string) error {
	conf := s.googleOAuthConfig()
	if conf.ClientID == "" || conf.ClientSecret == "" || conf.RedirectURL == "" {
		err := errors.New("oauth2 configuration is incomplete")
		slog.Info(err.Error())
		return err
	}

	token, err := conf.Exchange(ctx, code)
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	client := conf.Client(ctx, token)
	userInfo, err := googleUserInfo(client)
	if err != nil {
		return err
	}

	return s.storeAccount(ctx, &models.SocialAccount{
		Platform:        models.PlatformYoutube,
		AccountID:       userInfo.ID,
		AccountName:     userInfo.Name,
		AccountUsername: userInfo.Email,
	}, token.AccessToken, token.RefreshToken, token.Expiry)
}

func googleUserInfo(client *http.Client) (*transfer.GoogleUserInfo, error) {
	resp, err := client.Get("https://www.googleapis.com/oauth2/v1/userinfo")
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("error fetching user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected response status: %d", resp.StatusCode)
	}

	var userInfo transfer.GoogleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("error decoding user info: %w", err)
	}
	return &userInfo, nil
}

// storeAccount encrypts tokens and upserts the one-account-per-platform
// row.
func (s *connectService) storeAccount(ctx context.Context, acc *models.SocialAccount, accessToken, refreshToken string, expiresAt time.Time) error {
	encryptedAccess, err := utils.Encrypt([]byte(accessToken), []byte(s.cfg.SecretKey))
	if err != nil {
		return err
	}
	encryptedRefresh := encryptedAccess
	if refreshToken != "" && refreshToken != accessToken {
		encryptedRefresh, err = utils.Encrypt([]byte(refreshToken), []byte(s.cfg.SecretKey))
		if err != nil {
			return err
		}
	}

	acc.AccessToken = encryptedAccess
	acc.RefreshToken = encryptedRefresh
	acc.TokenExpiresAt = expiresAt

	_, err = s.sa.Upsert(ctx, acc)
	return err
}

func (s *connectService) ListAccounts(ctx context.Context) ([]*models.SocialAccount, error) {
	return s.sa.List(ctx)
}

// RefreshToken renews the account's access token using whatever grant
// the platform supports. Accounts on platforms without a refresh flow
// are left as they are.
func (s *connectService) RefreshToken(ctx context.Context, acc *models.SocialAccount) error {
	switch acc.Platform {
	case models.PlatformInstagram:
		return s.refreshInstagramToken(ctx, acc)
	case models.PlatformTiktok:
		return s.refreshTiktokToken(ctx, acc)
	case models.PlatformYoutube:
		return s.refreshYoutubeToken(ctx, acc)
	}
	return nil
}

func (s *connectService) refreshInstagramToken(ctx context.Context, acc *models.SocialAccount) error {
	decrypted, err := utils.Decrypt(acc.RefreshToken, []byte(s.cfg.SecretKey))
	if err != nil {
		return err
	}

	reqURL := fmt.Sprintf(
		"https://graph.instagram.com/refresh_access_token?grant_type=ig_refresh_token&access_token=%s",
		decrypted,
	)
	resp, err := http.Get(reqURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var result struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return err
	}
	if result.AccessToken == "" {
		return errors.New("no access token returned from instagram refresh")
	}

	return s.saveToken(ctx, acc.ID, result.AccessToken, result.AccessToken, GetExpiresAt(result.ExpiresIn))
}

func (s *connectService) refreshTiktokToken(ctx context.Context, acc *models.SocialAccount) error {
	decrypted, err := utils.Decrypt(acc.RefreshToken, []byte(s.cfg.SecretKey))
	if err != nil {
		return err
	}

	data := url.Values{}
	data.Set("client_key", s.cfg.TiktokClientKey)
	data.Set("client_secret", s.cfg.TiktokClientSecret)
	data.Set("grant_type", "refresh_token")
	data.Set("refresh_token", decrypted)

	resp, err := http.Post(
		"https://open.tiktokapis.com/v2/oauth/token/",
		"application/x-www-form-urlencoded",
		strings.NewReader(data.Encode()),
	)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var token transfer.TiktokTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return err
	}
	if token.AccessToken == "" {
		return errors.New("no access token returned from tiktok refresh")
	}

	refresh := token.RefreshToken
	if refresh == "" {
		refresh = decrypted
	}
	return s.saveToken(ctx, acc.ID, token.AccessToken, refresh, GetExpiresAt(token.ExpiresIn))
}

func (s *connectService) refreshYoutubeToken(ctx context.Context, acc *models.SocialAccount) error {
	decrypted, err := utils.Decrypt(acc.RefreshToken, []byte(s.cfg.SecretKey))
	if err != nil {
		return err
	}

	conf := s.googleOAuthConfig()
	tokenSource := conf.TokenSource(ctx, &oauth2.Token{RefreshToken: decrypted})

	token, err := tokenSource.Token()
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	return s.saveToken(ctx, acc.ID, token.AccessToken, decrypted, token.Expiry)
}

func (s *connectService) saveToken(ctx context.Context, accountID int64, accessToken, refreshToken string, expiresAt time.Time) error {
	encryptedAccess, err := utils.Encrypt([]byte(accessToken), []byte(s.cfg.SecretKey))
	if err != nil {
		return err
	}
	encryptedRefresh, err := utils.Encrypt([]byte(refreshToken), []byte(s.cfg.SecretKey))
	if err != nil {
		return err
	}
	return s.sa.SetToken(ctx, accountID, encryptedAccess, encryptedRefresh, expiresAt)
}

func (s *connectService) Disconnect(ctx context.Context, platform string) error {
	acc, err := s.sa.GetByPlatform(ctx, platform)
	if err != nil {
		return err
	}
	if acc == nil {
		return ErrNotFound
	}
	return s.sa.Remove(ctx, acc.ID)
}

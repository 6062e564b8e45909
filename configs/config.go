package config

import "os"

type R2 struct {
	AccountID  string
	AccessKey  string
	SecretKey  string
	BucketName string
	PublicURL  string
}

// PlatformCredentials holds the env-configured static tokens used when no
// connected social account exists for a platform.
type PlatformCredentials struct {
	InstagramAccessToken string
	InstagramUserID      string
	FacebookAccessToken  string
	FacebookPageID       string
	LinkedinAccessToken  string
	LinkedinPersonID     string
	TiktokAccessToken    string
	YoutubeAccessToken   string
	TwitterBearerToken   string
}

type Config struct {
	GeminiAPIKey          string
	GeminiModel           string
	InstagramClientID     string
	InstagramClientSecret string
	InstagramRedirectURI  string
	TiktokClientKey       string
	TiktokClientSecret    string
	TiktokRedirectURI     string
	GoogleClientID        string
	GoogleClientSecret    string
	GoogleRedirectURI     string
	Credentials           PlatformCredentials
	PostgresURI           string
	RedisURI              string
	FrontendURL           string
	R2                    R2
	SecretKey             string
}

func LoadConfig() *Config {
	return &Config{
		GeminiAPIKey:          getEnv("GEMINI_API_KEY", ""),
		GeminiModel:           getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		InstagramClientID:     getEnv("INSTAGRAM_CLIENT_ID", ""),
		InstagramClientSecret: getEnv("INSTAGRAM_CLIENT_SECRET", ""),
		InstagramRedirectURI:  getEnv("INSTAGRAM_REDIRECT_URI", ""),
		TiktokClientKey:       getEnv("TIKTOK_CLIENT_KEY", ""),
		TiktokClientSecret:    getEnv("TIKTOK_CLIENT_SECRET", ""),
		TiktokRedirectURI:     getEnv("TIKTOK_REDIRECT_URI", ""),
		GoogleClientID:        getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret:    getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURI:     getEnv("GOOGLE_REDIRECT_URI", ""),
		Credentials: PlatformCredentials{
			InstagramAccessToken: getEnv("INSTAGRAM_ACCESS_TOKEN", ""),
			InstagramUserID:      getEnv("INSTAGRAM_USER_ID", ""),
			FacebookAccessToken:  getEnv("FACEBOOK_ACCESS_TOKEN", ""),
			FacebookPageID:       getEnv("FACEBOOK_PAGE_ID", ""),
			LinkedinAccessToken:  getEnv("LINKEDIN_ACCESS_TOKEN", ""),
			LinkedinPersonID:     getEnv("LINKEDIN_PERSON_ID", ""),
			TiktokAccessToken:    getEnv("TIKTOK_ACCESS_TOKEN", ""),
			YoutubeAccessToken:   getEnv("YOUTUBE_ACCESS_TOKEN", ""),
			TwitterBearerToken:   getEnv("TWITTER_BEARER_TOKEN", ""),
		},
		PostgresURI: getEnv("POSTGRES_URI", ""),
		RedisURI:    getEnv("REDIS_URI", ""),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),
		R2: R2{
			AccountID:  getEnv("R2_ACCOUNT_ID", ""),
			AccessKey:  getEnv("R2_ACCESS_KEY", ""),
			SecretKey:  getEnv("R2_SECRET_KEY", ""),
			BucketName: getEnv("R2_BUCKET_NAME", ""),
			PublicURL:  getEnv("R2_PUBLIC_URL", ""),
		},
		SecretKey: getEnv("SECRET_KEY", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

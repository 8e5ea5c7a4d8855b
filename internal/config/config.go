package config

import (
	"net/url"
	"os"
	"strconv"
	"time"
)

// AppConfig is loaded once at process start and treated as read-only afterwards.
type AppConfig struct {
	Env       string
	Port      string
	ServerURL string
	ClientURL string

	MongoURI string

	AccessTokenSecret  string
	AccessTokenExpiry  time.Duration
	RefreshTokenSecret string
	RefreshTokenExpiry time.Duration

	ResendAPIKey string
	ResendAPIURL string
	FromEmail    string

	OpenAIAPIKey string
	OpenAIAPIURL string
	OpenAIModel  string

	StorageType string
	BucketName  string
	BucketRegion string
	AccessKey    string
	SecretAccessKey string
	LocalStoragePath string
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		Env:       getenv("ENV", "development"),
		Port:      getenv("PORT", "8080"),
		ServerURL: getenv("SERVER_URL", "http://localhost:8080"),
		ClientURL: getenv("CLIENT_URL", "http://localhost:5173"),

		MongoURI: os.Getenv("MONGO_URI"),

		AccessTokenSecret:  os.Getenv("ACCESS_TOKEN_SECRET"),
		AccessTokenExpiry:  getenvSeconds("ACCESS_TOKEN_EXPIRY", 60*60),
		RefreshTokenSecret: os.Getenv("REFRESH_TOKEN_SECRET"),
		RefreshTokenExpiry: getenvSeconds("REFRESH_TOKEN_EXPIRY", 60*60*24),

		ResendAPIKey: os.Getenv("RESEND_API_KEY"),
		ResendAPIURL: getenv("RESEND_API_URL", "https://api.resend.com/emails"),
		FromEmail:    os.Getenv("FROM_EMAIL"),

		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		OpenAIAPIURL: getenv("OPENAI_API_URL", "https://api.openai.com/v1/chat/completions"),
		OpenAIModel:  getenv("OPENAI_MODEL", "gpt-3.5-turbo"),

		StorageType:      getenv("STORAGE_TYPE", "local"),
		BucketName:       os.Getenv("BUCKET_NAME"),
		BucketRegion:     os.Getenv("BUCKET_REGION"),
		AccessKey:        os.Getenv("ACCESS_KEY"),
		SecretAccessKey:  os.Getenv("SECRET_ACCESS_KEY"),
		LocalStoragePath: getenv("LOCAL_STORAGE_PATH", "./uploads"),
	}
}

// IsProduction reports whether the server runs with production cookie settings.
func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}

// CookieDomain derives the cookie domain from the configured server URL.
func (c *AppConfig) CookieDomain() string {
	parsed, err := url.Parse(c.ServerURL)
	if err != nil {
		return ""
	}
	return parsed.Hostname()
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getenvSeconds(key string, fallback int) time.Duration {
	if val := os.Getenv(key); val != "" {
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return time.Duration(fallback) * time.Second
}

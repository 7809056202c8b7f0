package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Environment    string
	Port           string
	AppName        string
	AppBaseURL     string
	AllowedOrigins []string

	DBDriver    string // postgres or sqlite
	PostgresURL string
	SQLitePath  string
	RedisURL    string

	JWTSecret  string
	SessionTTL time.Duration

	AIProvider   string // openai or gemini
	OpenAIAPIKey string
	OpenAIModel  string
	GeminiAPIKey string
	GeminiModel  string
	AITimeout    time.Duration

	MailProvider string // smtp or ses
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPUseSSL   bool
	MailFrom     string
	MailFromName string
	AWSRegion    string

	ImageStore          string // none, cloudinary or s3
	CloudinaryName      string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	CloudinaryFolder    string
	S3Bucket            string
	S3Region            string
	S3PublicURL         string

	RateLimitRequests int
	RateLimitWindow   time.Duration

	SentryDSN     string
	LogFile       string
	LogMaxSizeMB  int
	LogMaxBackups int
}

func Load() *Config {
	return &Config{
		Environment:    strings.ToLower(getEnv("ENV", "development")),
		Port:           getEnv("PORT", "8080"),
		AppName:        getEnv("APP_NAME", "Taste Palette"),
		AppBaseURL:     strings.TrimRight(getEnv("APP_BASE_URL", "http://localhost:3000"), "/"),
		AllowedOrigins: parseList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),

		DBDriver:    strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		PostgresURL: getEnv("POSTGRES_URL", ""),
		SQLitePath:  getEnv("SQLITE_PATH", "tastepalette.db"),
		RedisURL:    getEnv("REDIS_URL", ""),

		JWTSecret:  getEnv("JWT_SECRET", ""),
		SessionTTL: getDuration("SESSION_TTL", 30*24*time.Hour),

		AIProvider:   strings.ToLower(getEnv("AI_PROVIDER", "openai")),
		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:  getEnv("OPENAI_MODEL", "gpt-4o"),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		AITimeout:    getDuration("AI_TIMEOUT", 60*time.Second),

		MailProvider: strings.ToLower(getEnv("MAIL_PROVIDER", "smtp")),
		SMTPHost:     getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     getInt("SMTP_PORT", 587),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPUseSSL:   getBool("SMTP_USE_SSL", false),
		MailFrom:     getEnv("MAIL_FROM", "no-reply@tastepalette.app"),
		MailFromName: getEnv("MAIL_FROM_NAME", "Taste Palette"),
		AWSRegion:    getEnv("AWS_REGION", "us-east-1"),

		ImageStore:          strings.ToLower(getEnv("IMAGE_STORE", "none")),
		CloudinaryName:      getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: getEnv("CLOUDINARY_API_SECRET", ""),
		CloudinaryFolder:    getEnv("CLOUDINARY_FOLDER", "menus"),
		S3Bucket:            getEnv("S3_BUCKET", ""),
		S3Region:            getEnv("S3_REGION", getEnv("AWS_REGION", "us-east-1")),
		S3PublicURL:         strings.TrimRight(getEnv("S3_PUBLIC_URL", ""), "/"),

		RateLimitRequests: getInt("AUTH_RATE_LIMIT", 20),
		RateLimitWindow:   getDuration("AUTH_RATE_WINDOW", time.Minute),

		SentryDSN:     getEnv("SENTRY_DSN", ""),
		LogFile:       getEnv("LOG_FILE", "logs/app.log"),
		LogMaxSizeMB:  getInt("LOG_MAX_SIZE_MB", 10),
		LogMaxBackups: getInt("LOG_MAX_BACKUPS", 3),
	}
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func getBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

// getDuration accepts Go duration strings ("90s") or plain seconds.
func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

func parseList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

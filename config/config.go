package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config aggregates application settings sourced from the environment and
// an optional .env file.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Mongo   MongoConfig   `mapstructure:"mongo"`
	Redis   RedisConfig   `mapstructure:"redis"`
	LLM     LLMConfig     `mapstructure:"llm"`
	OAuth   OAuthConfig   `mapstructure:"oauth"`
	Storage StorageConfig `mapstructure:"storage"`
	MinIO   MinIOConfig   `mapstructure:"minio"`
	Log     LogConfig     `mapstructure:"log"`
}

type AppConfig struct {
	Port        int    `mapstructure:"port"`
	Env         string `mapstructure:"env"`
	FrontendURL string `mapstructure:"frontend_url"`
	CORSOrigins string `mapstructure:"cors_origins"`
}

// IsProduction reports whether the server runs with production CORS rules.
func (a AppConfig) IsProduction() bool {
	return strings.EqualFold(a.Env, "production")
}

// AllowedOrigins lists the browser origins accepted in production.
func (a AppConfig) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(a.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if a.FrontendURL != "" {
		out = append(out, a.FrontendURL)
	}
	return out
}

type MongoConfig struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

// RedisConfig is optional; an empty Addr disables the profile cache.
type RedisConfig struct {
	Addr       string        `mapstructure:"addr"`
	ProfileTTL time.Duration `mapstructure:"profile_ttl"`
}

type LLMConfig struct {
	Provider       string        `mapstructure:"provider"`
	APIKey         string        `mapstructure:"api_key"`
	VertexProject  string        `mapstructure:"vertex_project"`
	VertexLocation string        `mapstructure:"vertex_location"`
	Model          string        `mapstructure:"model"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

// OAuthConfig selects the ID-token verifier. GoogleClientID enables Google
// verification; PublicKeyFile switches to a static RSA key.
type OAuthConfig struct {
	GoogleClientID string `mapstructure:"google_client_id"`
	PublicKeyFile  string `mapstructure:"public_key_file"`
	Issuer         string `mapstructure:"issuer"`
}

type StorageConfig struct {
	ImageStore   string `mapstructure:"image_store"`
	UploadDir    string `mapstructure:"upload_dir"`
	TmpUploadDir string `mapstructure:"tmp_upload_dir"`
	GCSBucket    string `mapstructure:"gcs_bucket"`
}

type MinIOConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	Bucket          string `mapstructure:"bucket"`
	PublicURL       string `mapstructure:"public_url"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if err := bindEnv(v); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// MustLoad wraps Load and panics on failure.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.port", 5000)
	v.SetDefault("app.env", "development")
	v.SetDefault("mongo.database", "careerlens")
	v.SetDefault("redis.profile_ttl", 5*time.Minute)
	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.vertex_location", "us-central1")
	v.SetDefault("llm.model", "gemini-2.5-flash")
	v.SetDefault("llm.timeout", 120*time.Second)
	v.SetDefault("storage.image_store", "local")
	v.SetDefault("storage.upload_dir", "uploads")
	v.SetDefault("storage.tmp_upload_dir", "tmp_uploads")
	v.SetDefault("minio.use_ssl", false)
	v.SetDefault("minio.bucket", "careerlens-images")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

func bindEnv(v *viper.Viper) error {
	mappings := map[string]string{
		"app.port":                "PORT",
		"app.env":                 "APP_ENV",
		"app.frontend_url":        "FRONTEND_URL",
		"app.cors_origins":        "CORS_ORIGINS",
		"mongo.uri":               "MONGO_URI",
		"mongo.database":          "MONGO_DB",
		"redis.addr":              "REDIS_ADDR",
		"redis.profile_ttl":       "PROFILE_CACHE_TTL",
		"llm.provider":            "LLM_PROVIDER",
		"llm.api_key":             "GOOGLE_API_KEY",
		"llm.vertex_project":      "VERTEX_PROJECT",
		"llm.vertex_location":     "VERTEX_LOCATION",
		"llm.model":               "LLM_MODEL",
		"llm.timeout":             "LLM_TIMEOUT",
		"oauth.google_client_id":  "GOOGLE_CLIENT_ID",
		"oauth.public_key_file":   "OAUTH_PUBLIC_KEY_FILE",
		"oauth.issuer":            "OAUTH_ISSUER",
		"storage.image_store":     "IMAGE_STORE",
		"storage.upload_dir":      "UPLOAD_DIR",
		"storage.tmp_upload_dir":  "TMP_UPLOAD_DIR",
		"storage.gcs_bucket":      "GCS_BUCKET",
		"minio.endpoint":          "MINIO_ENDPOINT",
		"minio.access_key_id":     "MINIO_ACCESS_KEY_ID",
		"minio.secret_access_key": "MINIO_SECRET_ACCESS_KEY",
		"minio.use_ssl":           "MINIO_USE_SSL",
		"minio.bucket":            "MINIO_BUCKET",
		"minio.public_url":        "MINIO_PUBLIC_URL",
		"log.level":               "LOG_LEVEL",
		"log.format":              "LOG_FORMAT",
	}

	for key, env := range mappings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("bind %s to %s: %w", key, env, err)
		}
	}
	return nil
}

func validate(cfg Config) error {
	if cfg.App.Port <= 0 {
		return errors.New("port must be positive")
	}
	for _, o := range cfg.App.AllowedOrigins() {
		if !strings.HasPrefix(o, "http://") && !strings.HasPrefix(o, "https://") {
			return fmt.Errorf("CORS origin %q must start with http:// or https://", o)
		}
	}
	if cfg.Mongo.URI == "" {
		return errors.New("MONGO_URI is required")
	}
	if cfg.LLM.Timeout <= 0 {
		return errors.New("LLM_TIMEOUT must be positive")
	}
	switch strings.ToLower(cfg.LLM.Provider) {
	case "gemini":
		if cfg.LLM.APIKey == "" {
			return errors.New("GOOGLE_API_KEY is required for the gemini provider")
		}
	case "vertex":
		if cfg.LLM.VertexProject == "" {
			return errors.New("VERTEX_PROJECT is required for the vertex provider")
		}
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q", cfg.LLM.Provider)
	}
	switch strings.ToLower(cfg.Storage.ImageStore) {
	case "local":
		if cfg.Storage.UploadDir == "" {
			return errors.New("UPLOAD_DIR is required for the local image store")
		}
	case "gcs":
		if cfg.Storage.GCSBucket == "" {
			return errors.New("GCS_BUCKET is required for the gcs image store")
		}
	case "minio":
		if cfg.MinIO.Endpoint == "" {
			return errors.New("MINIO_ENDPOINT is required for the minio image store")
		}
		if cfg.MinIO.AccessKeyID == "" || cfg.MinIO.SecretAccessKey == "" {
			return errors.New("minio credentials are required for the minio image store")
		}
	default:
		return fmt.Errorf("unknown IMAGE_STORE %q", cfg.Storage.ImageStore)
	}
	return nil
}

// Package config loads the storenews configuration from YAML and the environment.
package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"

	"storenews/app/models"
)

// DefaultPath is read when no explicit path or CONFIG_PATH is given.
const DefaultPath = "config.yaml"

// Config is the root configuration.
// Sources, in priority order:
//  1. the path passed to Load;
//  2. the CONFIG_PATH environment variable;
//  3. ./config.yaml;
//  4. environment variables only.
type Config struct {
	Env      string           `yaml:"env" env:"ENV" env-default:"local" validate:"oneof=local dev prod test"`
	HTTP     HTTPConfig       `yaml:"http"`
	Storage  StorageConfig    `yaml:"storage"`
	Cache    CacheConfig      `yaml:"cache"`
	Log      LogConfig        `yaml:"log"`
	Events   EventsConfig     `yaml:"events"`
	Media    MediaSettings    `yaml:"media"`
	News     NewsSettings     `yaml:"news"`
	Customer CustomerSettings `yaml:"customer"`
	Captcha  CaptchaSettings  `yaml:"captcha"`
	DateTime DateTimeSettings `yaml:"datetime"`
}

// HTTPConfig holds the web server settings.
type HTTPConfig struct {
	Host         string        `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port         string        `yaml:"port" env:"HTTP_PORT" env-default:"8080" validate:"required,numeric"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"15s" validate:"gt=0"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"15s" validate:"gt=0"`
	ImagesURL    string        `yaml:"images_url" env:"IMAGES_URL" env-default:"/images" validate:"required"`
}

// Addr returns host:port.
func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, h.Port)
}

// StorageConfig selects where badger keeps its files.
type StorageConfig struct {
	Path     string `yaml:"path" env:"STORAGE_PATH" env-default:"data/storenews.db"`
	InMemory bool   `yaml:"in_memory" env:"STORAGE_IN_MEMORY" env-default:"false"`
}

// CacheConfig sizes the model cache.
type CacheConfig struct {
	NumCounters int64 `yaml:"num_counters" env:"CACHE_NUM_COUNTERS" env-default:"10000" validate:"gt=0"`
	MaxCost     int64 `yaml:"max_cost" env:"CACHE_MAX_COST" env-default:"1000" validate:"gt=0"`
	BufferItems int64 `yaml:"buffer_items" env:"CACHE_BUFFER_ITEMS" env-default:"64" validate:"gt=0"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info" validate:"oneof=trace debug info warn warning error fatal panic"`
}

// EventsConfig enables sharing change events with other nodes through a message
// broker. Sharing is off when AMQPURL is empty.
type EventsConfig struct {
	AMQPURL  string `yaml:"amqp_url" env:"EVENTS_AMQP_URL"`
	Exchange string `yaml:"exchange" env:"EVENTS_EXCHANGE" env-default:"storenews.events"`
}

// MediaSettings are the picture settings used by the news views.
type MediaSettings struct {
	AvatarPictureSize int `yaml:"avatar_picture_size" env:"MEDIA_AVATAR_PICTURE_SIZE" env-default:"120" validate:"gt=0"`
}

// NewsSettings are the news paging and commenting settings.
type NewsSettings struct {
	MainPageNewsCount                      int  `yaml:"main_page_news_count" env:"NEWS_MAIN_PAGE_COUNT" env-default:"3" validate:"gt=0"`
	NewsArchivePageSize                    int  `yaml:"news_archive_page_size" env:"NEWS_ARCHIVE_PAGE_SIZE" env-default:"10" validate:"gt=0"`
	AllowNotRegisteredUsersToLeaveComments bool `yaml:"allow_not_registered_users_to_leave_comments" env:"NEWS_ALLOW_GUEST_COMMENTS" env-default:"false"`
}

// CustomerSettings control how comment authors are shown.
type CustomerSettings struct {
	DefaultAvatarEnabled          bool                      `yaml:"default_avatar_enabled" env:"CUSTOMER_DEFAULT_AVATAR_ENABLED" env-default:"true"`
	AllowViewingProfiles          bool                      `yaml:"allow_viewing_profiles" env:"CUSTOMER_ALLOW_VIEWING_PROFILES" env-default:"false"`
	AllowCustomersToUploadAvatars bool                      `yaml:"allow_customers_to_upload_avatars" env:"CUSTOMER_ALLOW_UPLOAD_AVATARS" env-default:"false"`
	CustomerNameFormat            models.CustomerNameFormat `yaml:"customer_name_format" env:"CUSTOMER_NAME_FORMAT" env-default:"emails" validate:"oneof=emails usernames fullnames firstname"`
}

// CaptchaSettings decide whether the comment form shows a captcha.
type CaptchaSettings struct {
	Enabled               bool `yaml:"enabled" env:"CAPTCHA_ENABLED" env-default:"false"`
	ShowOnNewsCommentPage bool `yaml:"show_on_news_comment_page" env:"CAPTCHA_SHOW_ON_NEWS_COMMENT_PAGE" env-default:"false"`
}

// DateTimeSettings select the time zone dates are shown in.
type DateTimeSettings struct {
	DefaultStoreTimeZoneID      string `yaml:"default_store_time_zone_id" env:"DATETIME_DEFAULT_TIME_ZONE" env-default:"UTC"`
	AllowCustomersToSetTimeZone bool   `yaml:"allow_customers_to_set_time_zone" env:"DATETIME_ALLOW_CUSTOMER_TIME_ZONE" env-default:"false"`
}

// MustLoad is Load that panics on error.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads the configuration by priority:
// 1) explicit path; 2) CONFIG_PATH; 3) ./config.yaml; 4) ENV.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		if _, err := os.Stat(DefaultPath); err == nil {
			path = DefaultPath
		}
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file does not exist: %s", path)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the loaded values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := time.LoadLocation(c.DateTime.DefaultStoreTimeZoneID); err != nil {
		return fmt.Errorf("invalid config: datetime.default_store_time_zone_id: %w", err)
	}
	return nil
}

package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (secrets, chat IDs)
// - default: Values common across all environments (timeouts, page size, etc.)
// -----------------------------------------------------------------------------

type Config struct {
	Server    ServerConfig
	Catalog   CatalogConfig
	Cache     CacheConfig
	Notify    NotifyConfig
	Replicate ReplicateConfig
	CORS      CORSConfig
	Log       LogConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8080"`
}

// CatalogConfig covers both upstream endpoints (listing and cabin detail).
type CatalogConfig struct {
	SiteBaseURL    string        `envconfig:"CATALOG_SITE_BASE_URL" default:"https://aida.de"`
	ListBaseURL    string        `envconfig:"CATALOG_LIST_BASE_URL" default:"https://aida.de/content/aida-search-and-booking/requests/search.cruise.v1.json"`
	DetailBaseURL  string        `envconfig:"CATALOG_DETAIL_BASE_URL" default:"https://aida.de/content/aida-search-and-booking/requests/detail.content.json"`
	UserAgent      string        `envconfig:"CATALOG_USER_AGENT" default:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"`
	PageSize       int           `envconfig:"CATALOG_PAGE_SIZE" default:"1000"`
	Language       string        `envconfig:"CATALOG_LANGUAGE" default:"de"`
	TariffType     string        `envconfig:"CATALOG_TARIFF_TYPE" default:"CLA"`
	ConnectTimeout time.Duration `envconfig:"CATALOG_CONNECT_TIMEOUT" default:"10s"`
	Timeout        time.Duration `envconfig:"CATALOG_TIMEOUT" default:"25s"`
	DetailCacheTTL time.Duration `envconfig:"CATALOG_DETAIL_CACHE_TTL" default:"180s"`
}

// CacheConfig describes the durable snapshot store on local disk.
type CacheConfig struct {
	Dir           string `envconfig:"CACHE_DIR" default:"./cache"`
	TimeZone      string `envconfig:"CACHE_TIMEZONE" default:"Europe/Berlin"`
	DailyFullScan bool   `envconfig:"DAILY_FULL_SCAN" default:"true"`
	NewBadgeDays  int    `envconfig:"NEW_BADGE_DAYS" default:"3"`
	Currency      string `envconfig:"CURRENCY" default:"€"`
}

type NotifyConfig struct {
	TelegramEnabled   bool          `envconfig:"TELEGRAM_ENABLED" default:"false"`
	TelegramBotToken  string        `envconfig:"TELEGRAM_BOT_TOKEN" default:""`
	TelegramChatID    int64         `envconfig:"TELEGRAM_CHAT_ID" default:"0"`
	PNPAlertThreshold float64       `envconfig:"TG_PNP_ALERT_THRESHOLD" default:"0"`
	DefaultSilent     bool          `envconfig:"TG_DEFAULT_SILENT" default:"true"`
	MaxNotifyPNP      float64       `envconfig:"TG_MAX_NOTIFY_PNP" default:"0"`
	SendDelay         time.Duration `envconfig:"TG_SEND_DELAY" default:"400ms"`
}

// ReplicateConfig configures snapshot push to a remote mirror host.
type ReplicateConfig struct {
	Enabled      bool          `envconfig:"REPLICATE_ENABLED" default:"false"`
	BaseURL      string        `envconfig:"REPLICATE_BASE_URL" default:""`
	Secret       string        `envconfig:"REPLICATE_SECRET" default:""`
	Timeout      time.Duration `envconfig:"REPLICATE_TIMEOUT" default:"20s"`
	MaxClockSkew time.Duration `envconfig:"REPLICATE_MAX_CLOCK_SKEW" default:"5m"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"false"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Europe/Berlin"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"7200"` // 2*60*60
}

// Location resolves the time zone the daily-refresh marker is compared in.
// "Once per calendar day" depends on it around midnight.
func (c *CacheConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		Catalog: CatalogConfig{
			SiteBaseURL:    "http://localhost",
			ListBaseURL:    "http://localhost/list.json",
			DetailBaseURL:  "http://localhost/detail.json",
			UserAgent:      "test-agent",
			PageSize:       50,
			Language:       "de",
			TariffType:     "CLA",
			ConnectTimeout: 2 * time.Second,
			Timeout:        5 * time.Second,
			DetailCacheTTL: 180 * time.Second,
		},
		Cache: CacheConfig{
			Dir:           "", // Tests point this at t.TempDir()
			TimeZone:      "UTC",
			DailyFullScan: true,
			NewBadgeDays:  3,
			Currency:      "€",
		},
		Notify: NotifyConfig{
			DefaultSilent: true,
			SendDelay:     0,
		},
		Replicate: ReplicateConfig{
			Timeout:      5 * time.Second,
			MaxClockSkew: 5 * time.Minute,
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeZone:   "UTC",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
	}
}

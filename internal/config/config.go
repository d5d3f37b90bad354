package config

import (
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const EnvPrefix = "MEDSTORE_"

type Config struct {
	ServiceName string `koanf:"serviceName"`

	HTTP struct {
		Port              int           `koanf:"port"`
		ReadTimeout       time.Duration `koanf:"readTimeout"`
		WriteTimeout      time.Duration `koanf:"writeTimeout"`
		ReadHeaderTimeout time.Duration `koanf:"readHeaderTimeout"`
		ShutdownTimeout   time.Duration `koanf:"shutdownTimeout"`
		BodyLimit         string        `koanf:"bodyLimit"`
		CORSOrigins       []string      `koanf:"corsOrigins"`
	} `koanf:"http"`

	Log struct {
		Level  string `koanf:"level"`
		Pretty bool   `koanf:"pretty"`
	} `koanf:"log"`

	Database struct {
		URL             string        `koanf:"url"`
		Replicas        []string      `koanf:"replicas"`
		MaxOpenConns    int           `koanf:"maxOpenConns"`
		MaxIdleConns    int           `koanf:"maxIdleConns"`
		ConnMaxLifetime time.Duration `koanf:"connMaxLifetime"`
		LogSQL          bool          `koanf:"logSql"`
	} `koanf:"database"`

	Auth struct {
		AccessSecret  string        `koanf:"accessSecret"`
		RefreshSecret string        `koanf:"refreshSecret"`
		AccessTTL     time.Duration `koanf:"accessTtl"`
		RefreshTTL    time.Duration `koanf:"refreshTtl"`
		BcryptCost    int           `koanf:"bcryptCost"`
		SecureCookies bool          `koanf:"secureCookies"`
	} `koanf:"auth"`

	Pricing Pricing `koanf:"pricing"`

	Kafka struct {
		Enabled bool     `koanf:"enabled"`
		Brokers []string `koanf:"brokers"`
	} `koanf:"kafka"`

	Elasticsearch struct {
		Enabled   bool     `koanf:"enabled"`
		Addresses []string `koanf:"addresses"`
		Username  string   `koanf:"username"`
		Password  string   `koanf:"password"`
		Index     string   `koanf:"index"`
	} `koanf:"elasticsearch"`

	Redis struct {
		Enabled  bool          `koanf:"enabled"`
		Addr     string        `koanf:"addr"`
		Password string        `koanf:"password"`
		DB       int           `koanf:"db"`
		TTL      time.Duration `koanf:"ttl"`
	} `koanf:"redis"`

	QRCode struct {
		Size  int    `koanf:"size"`
		Level string `koanf:"level"`
	} `koanf:"qrcode"`

	CSRF struct {
		Enabled          bool `koanf:"enabled"`
		AllowCrossOrigin bool `koanf:"allowCrossOrigin"`
	} `koanf:"csrf"`
}

type Pricing struct {
	DiscountPercent       float64 `koanf:"discountPercent"`
	FreeDeliveryThreshold float64 `koanf:"freeDeliveryThreshold"`
	DeliveryFee           float64 `koanf:"deliveryFee"`
}

// Load reads .env, then the optional yaml file, then MEDSTORE_* variables.
// An empty path skips the yaml file.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, errors.Wrapf(err, "read config %s", path)
			}
		} else if !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "stat config %s", path)
		}
	}

	existing := k.Raw()
	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			return canonicalizeEnvKey(strings.TrimPrefix(key, EnvPrefix), existing), value
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables")
	}

	cfg := &Config{}
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}

	cfg.applyLegacyEnv()
	cfg.splitLists()
	cfg.applyDefaults()
	return cfg, nil
}

// applyLegacyEnv keeps the plain variable names used by older deployments working.
func (c *Config) applyLegacyEnv() {
	if c.Database.URL == "" {
		c.Database.URL = os.Getenv("DATABASE_URL")
	}
	if c.Auth.AccessSecret == "" {
		c.Auth.AccessSecret = os.Getenv("JWT_SECRET")
	}
	if c.Auth.RefreshSecret == "" {
		c.Auth.RefreshSecret = os.Getenv("JWT_REFRESH_SECRET")
	}
	if c.Log.Level == "" {
		c.Log.Level = os.Getenv("LOG_LEVEL")
	}
	if c.HTTP.Port == 0 {
		c.HTTP.Port = EnvIntDefault("SERVER_PORT", 0)
	}
	if len(c.Kafka.Brokers) == 0 {
		c.Kafka.Brokers = CSV(os.Getenv("KAFKA_BROKERS"))
	}
}

// splitLists expands comma separated env values that arrive as a single element.
func (c *Config) splitLists() {
	for _, list := range []*[]string{&c.HTTP.CORSOrigins, &c.Database.Replicas, &c.Kafka.Brokers, &c.Elasticsearch.Addresses} {
		if len(*list) == 1 {
			*list = CSV((*list)[0])
		}
	}
}

func (c *Config) applyDefaults() {
	if c.ServiceName == "" {
		c.ServiceName = "medstore"
	}
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8080
	}
	if c.HTTP.ReadTimeout == 0 {
		c.HTTP.ReadTimeout = 10 * time.Second
	}
	if c.HTTP.WriteTimeout == 0 {
		c.HTTP.WriteTimeout = 15 * time.Second
	}
	if c.HTTP.ReadHeaderTimeout == 0 {
		c.HTTP.ReadHeaderTimeout = 3 * time.Second
	}
	if c.HTTP.ShutdownTimeout == 0 {
		c.HTTP.ShutdownTimeout = 10 * time.Second
	}
	if c.HTTP.BodyLimit == "" {
		c.HTTP.BodyLimit = "2M"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Auth.AccessTTL == 0 {
		c.Auth.AccessTTL = 15 * time.Minute
	}
	if c.Auth.RefreshTTL == 0 {
		c.Auth.RefreshTTL = 7 * 24 * time.Hour
	}
	if c.Auth.BcryptCost == 0 {
		c.Auth.BcryptCost = 10
	}
	if c.Pricing.DiscountPercent == 0 {
		c.Pricing.DiscountPercent = 10
	}
	if c.Pricing.FreeDeliveryThreshold == 0 {
		c.Pricing.FreeDeliveryThreshold = 299
	}
	if c.Pricing.DeliveryFee == 0 {
		c.Pricing.DeliveryFee = 49
	}
	if c.Elasticsearch.Index == "" {
		c.Elasticsearch.Index = "products"
	}
	if c.Redis.TTL == 0 {
		c.Redis.TTL = 5 * time.Minute
	}
	if c.QRCode.Size == 0 {
		c.QRCode.Size = 256
	}
	if c.QRCode.Level == "" {
		c.QRCode.Level = "M"
	}
}

// Validate checks what serve cannot run without.
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return errors.New("database.url (MEDSTORE_DATABASE_URL or DATABASE_URL) is required")
	}
	if c.Auth.AccessSecret == "" || c.Auth.RefreshSecret == "" {
		return errors.New("auth.accessSecret and auth.refreshSecret are required")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return errors.New("kafka.brokers is required when kafka is enabled")
	}
	if c.Elasticsearch.Enabled && len(c.Elasticsearch.Addresses) == 0 {
		return errors.New("elasticsearch.addresses is required when elasticsearch is enabled")
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return errors.New("redis.addr is required when redis is enabled")
	}
	return nil
}

func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.HTTP.Port)
}

// canonicalizeEnvKey maps DATABASE_MAXOPENCONNS onto database.maxOpenConns by
// matching each segment against keys already loaded from yaml.
func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}
		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
			continue
		}
		canonical = append(canonical, segment)
		current = nil
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (string, map[string]any, bool) {
	if len(current) == 0 {
		return "", nil, false
	}
	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}
		child, _ := value.(map[string]any)
		return key, child, true
	}
	return "", nil, false
}

func normalizeToken(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

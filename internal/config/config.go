// config реализует конфигурацию engagement-service: загрузка из YAML/ENV с предсказуемым приоритетом.
package config

import (
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// MaxBatchCeiling — жёсткий потолок операций в одной атомарной пачке документного хранилища.
const MaxBatchCeiling = 500

// Режимы доставки рассылки.
const (
	FanoutInline = "inline"
	FanoutQueue  = "queue"
)

// MemoryURL — специальный DATABASE_URL для запуска без MongoDB (локальная разработка).
const MemoryURL = "memory://"

// Config — корневая конфигурация сервиса.
// Приоритет источников:
//  1. явный путь, переданный в MustLoad/Load;
//  2. переменная окружения CONFIG_PATH;
//  3. файл ./local.yaml из рабочей директории;
//  4. переменные окружения.
type Config struct {
	Env         string            `yaml:"env" env:"ENV" env-default:"local"`
	HTTP        HTTPConfig        `yaml:"http"`
	DB          DBConfig          `yaml:"db"`
	Redis       RedisConfig       `yaml:"redis"`
	DeadLetters DeadLetterConfig  `yaml:"dead_letters"`
	Progression ProgressionConfig `yaml:"progression"`
	Fanout      FanoutConfig      `yaml:"fanout"`
	Membership  MembershipConfig  `yaml:"membership"`
	Limits      LimitsConfig      `yaml:"limits"`
	Auth        AuthConfig        `yaml:"auth"`
	Timeouts    TimeoutConfig     `yaml:"timeouts"`
}

// TimeoutConfig — сервисные таймауты (общий дедлайн обработки запроса).
type TimeoutConfig struct {
	Service time.Duration `yaml:"service" env:"SERVICE" env-default:"5s"`
}

// HTTPConfig — HTTP API, health и metrics.
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"50085"`
}

// Addr возвращает адрес в формате host:port.
func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, h.Port)
}

// DBConfig — настройки подключения к MongoDB.
// Transactions включает многодокументные транзакции (нужен replica set).
type DBConfig struct {
	URL          string `yaml:"url" env:"DATABASE_URL" env-required:"true"`
	Transactions bool   `yaml:"transactions" env:"DB_TRANSACTIONS" env-default:"false"`
}

// RedisConfig — долговременная очередь рассылки. Пустой URL — очередь в памяти процесса.
type RedisConfig struct {
	URL    string `yaml:"url" env:"REDIS_URL"`
	Prefix string `yaml:"prefix" env:"REDIS_PREFIX" env-default:"engagement:fanout:"`
}

// DeadLetterConfig — PostgreSQL для элементов рассылки, исчерпавших попытки.
// Пустой URL — такие элементы только логируются.
type DeadLetterConfig struct {
	URL string `yaml:"url" env:"DEAD_LETTER_DATABASE_URL"`
}

// ProgressionRule — стартовая цель и прирост цели на каждом уровне для одной метрики.
type ProgressionRule struct {
	Goal      int64 `yaml:"goal" env:"GOAL"`
	Increment int64 `yaml:"increment" env:"INCREMENT"`
}

// ProgressionConfig — правила прогресса по метрикам.
type ProgressionConfig struct {
	Posts    ProgressionRule `yaml:"posts" env-prefix:"POSTS_"`
	Comments ProgressionRule `yaml:"comments" env-prefix:"COMMENTS_"`
	// Сколько раз повторять compare-and-swap при конкурентной записи счётчика.
	CASRetries int `yaml:"cas_retries" env:"CAS_RETRIES" env-default:"8"`
}

// Rule возвращает правило для метрики по её имени.
func (p ProgressionConfig) Rule(metric string) (ProgressionRule, bool) {
	switch metric {
	case "posts":
		return p.Posts, true
	case "comments":
		return p.Comments, true
	default:
		return ProgressionRule{}, false
	}
}

// FanoutConfig — доставка уведомлений.
type FanoutConfig struct {
	Mode         string        `yaml:"mode" env:"FANOUT_MODE" env-default:"inline"`
	BatchCeiling int           `yaml:"batch_ceiling" env:"FANOUT_BATCH_CEILING" env-default:"500"`
	Workers      int           `yaml:"workers" env:"FANOUT_WORKERS" env-default:"4"`
	MaxAttempts  int           `yaml:"max_attempts" env:"FANOUT_MAX_ATTEMPTS" env-default:"5"`
	PollTimeout  time.Duration `yaml:"poll_timeout" env:"FANOUT_POLL_TIMEOUT" env-default:"2s"`
	RetryBackoff time.Duration `yaml:"retry_backoff" env:"FANOUT_RETRY_BACKOFF" env-default:"500ms"`
	// EventTimeout — верхняя граница обработки события, отвязанной от запроса. 0 — без границы.
	EventTimeout time.Duration `yaml:"event_timeout" env:"FANOUT_EVENT_TIMEOUT" env-default:"1m"`
}

// MembershipConfig — сверка счётчика участников. 0 отключает периодическую сверку.
type MembershipConfig struct {
	ReconcileInterval time.Duration `yaml:"reconcile_interval" env:"RECONCILE_INTERVAL" env-default:"0s"`
}

// LimitsConfig — лимиты выдачи списка уведомлений.
type LimitsConfig struct {
	Default int64 `yaml:"default" env:"DEFAULT_LIMIT" env-default:"20"`
	Max     int64 `yaml:"max"     env:"MAX_LIMIT"     env-default:"300"`
}

// AuthConfig — проверка access-токенов, выпущенных auth-service (HS256).
type AuthConfig struct {
	Secret   string   `yaml:"secret" env:"AUTH_SECRET"`
	Issuer   string   `yaml:"issuer" env:"AUTH_ISSUER" env-default:"auth-service"`
	Audience []string `yaml:"audience" env:"AUTH_AUDIENCE" env-separator:"," env-default:"forum"`
	// Admins — идентификаторы пользователей с доступом к /v1/admin.
	Admins []string `yaml:"admins" env:"AUTH_ADMINS" env-separator:","`
}

// IsAdmin сообщает, входит ли пользователь в список администраторов.
func (a AuthConfig) IsAdmin(userID string) bool {
	if userID == "" {
		return false
	}

	for _, id := range a.Admins {
		if id == userID {
			return true
		}
	}

	return false
}

// MustLoad — обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)

	if err != nil {
		panic(err)
	}

	return cfg
}

// Load загружает конфигурацию по приоритету:
// 1) явный путь; 2) CONFIG_PATH; 3) ./local.yaml; 4) ENV.
// После чтения файла накладываем ENV-переменные поверх значений из YAML.
func Load(path string) (*Config, error) {
	var cfg Config

	readFile := func(p string) error {
		if _, err := os.Stat(p); err != nil {
			return fmt.Errorf("config file %q stat failed: %w", p, err)
		}

		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return fmt.Errorf("failed to read config %q: %w", p, err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return fmt.Errorf("failed to overlay env: %w", err)
		}

		return nil
	}

	switch {
	case path != "":
		if err := readFile(path); err != nil {
			return nil, err
		}
	case os.Getenv("CONFIG_PATH") != "":
		if err := readFile(os.Getenv("CONFIG_PATH")); err != nil {
			return nil, err
		}
	default:
		if _, err := os.Stat("local.yaml"); err == nil {
			if err := readFile("local.yaml"); err != nil {
				return nil, err
			}
			break
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
		}
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyDefaults проставляет продуктовые значения по умолчанию, которые отличаются
// между метриками и поэтому не выражаются через env-default.
func (c *Config) applyDefaults() {
	if c.Progression.Posts.Goal == 0 {
		c.Progression.Posts.Goal = 5
	}
	if c.Progression.Posts.Increment == 0 {
		c.Progression.Posts.Increment = 5
	}
	if c.Progression.Comments.Goal == 0 {
		c.Progression.Comments.Goal = 10
	}
	if c.Progression.Comments.Increment == 0 {
		c.Progression.Comments.Increment = 10
	}

	c.Fanout.Mode = strings.ToLower(strings.TrimSpace(c.Fanout.Mode))
}

// validate — базовая валидация значений.
func (c *Config) validate() error {
	if c.DB.URL == "" {
		return fmt.Errorf("db.url is required")
	}

	if c.Auth.Secret == "" {
		return fmt.Errorf("auth.secret is required")
	}

	for name, rule := range map[string]ProgressionRule{"posts": c.Progression.Posts, "comments": c.Progression.Comments} {
		if rule.Goal < 1 {
			return fmt.Errorf("progression.%s.goal must be >= 1", name)
		}

		if rule.Increment < 1 {
			return fmt.Errorf("progression.%s.increment must be >= 1", name)
		}
	}

	if c.Progression.CASRetries <= 0 {
		return fmt.Errorf("progression.cas_retries must be > 0")
	}

	if c.Fanout.Mode != FanoutInline && c.Fanout.Mode != FanoutQueue {
		return fmt.Errorf("fanout.mode must be %q or %q", FanoutInline, FanoutQueue)
	}

	if c.Fanout.BatchCeiling <= 0 || c.Fanout.BatchCeiling > MaxBatchCeiling {
		return fmt.Errorf("fanout.batch_ceiling must be in [1, %d]", MaxBatchCeiling)
	}

	if c.Fanout.Workers <= 0 {
		return fmt.Errorf("fanout.workers must be > 0")
	}

	if c.Fanout.MaxAttempts <= 0 {
		return fmt.Errorf("fanout.max_attempts must be > 0")
	}

	if c.Fanout.EventTimeout < 0 {
		return fmt.Errorf("fanout.event_timeout must be >= 0")
	}

	if c.Membership.ReconcileInterval < 0 {
		return fmt.Errorf("membership.reconcile_interval must be >= 0")
	}

	if c.Limits.Default <= 0 || c.Limits.Max <= 0 {
		return fmt.Errorf("limits.default and limits.max must be > 0")
	}

	if c.Limits.Default > c.Limits.Max {
		return fmt.Errorf("limits.default must be <= limits.max")
	}

	return nil
}

package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

type ServerConfig struct {
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port"`
	Mode    string `mapstructure:"mode"`
	BaseURL string `mapstructure:"base_url"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	SQLitePath      string `mapstructure:"sqlite_path"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

// GetDSN returns the driver specific data source name.
func (d *DatabaseConfig) GetDSN() string {
	if d.Driver == DriverSQLite {
		return d.SQLitePath
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&collation=utf8mb4_general_ci&parseTime=true&loc=UTC",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type EmailConfig struct {
	SMTPHost     string `mapstructure:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port"`
	SMTPUser     string `mapstructure:"smtp_user"`
	SMTPPassword string `mapstructure:"smtp_password"`
	FromAddress  string `mapstructure:"from_address"`
	FromName     string `mapstructure:"from_name"`
}

// Enabled reports whether payment confirmation emails can be sent.
func (e *EmailConfig) Enabled() bool {
	return e.SMTPHost != "" && e.FromAddress != ""
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// Enabled reports whether a Redis server is configured. Without one the
// callback handler falls back to database-only idempotency.
func (r *RedisConfig) Enabled() bool {
	return r.Host != ""
}

// VNPayConfig is the merchant configuration for the VNPay hosted payment page.
// It is loaded once at start and must not change afterwards.
type VNPayConfig struct {
	URL        string `mapstructure:"url"`
	TmnCode    string `mapstructure:"tmn_code"`
	HashSecret string `mapstructure:"hash_secret"`
	ReturnURL  string `mapstructure:"return_url"`
	Locale     string `mapstructure:"locale"`
	Timezone   string `mapstructure:"timezone"`
	// OrderInfoPrefix precedes the order ID in vnp_OrderInfo. Diacritics are stripped before signing.
	OrderInfoPrefix string `mapstructure:"order_info_prefix"`
}

func (v *VNPayConfig) Validate() error {
	var missing []string
	if v.URL == "" {
		missing = append(missing, "url")
	}
	if v.TmnCode == "" {
		missing = append(missing, "tmn_code")
	}
	if v.HashSecret == "" {
		missing = append(missing, "hash_secret")
	}
	if v.ReturnURL == "" {
		missing = append(missing, "return_url")
	}
	if len(missing) > 0 {
		return fmt.Errorf("vnpay config missing: %s", strings.Join(missing, ", "))
	}

	if _, err := url.ParseRequestURI(v.URL); err != nil {
		return fmt.Errorf("vnpay url is invalid: %w", err)
	}
	if !strings.HasPrefix(v.ReturnURL, "/") {
		if u, err := url.Parse(v.ReturnURL); err != nil || u.Scheme == "" || u.Host == "" {
			return errors.New("vnpay return_url must be an absolute URL or a path starting with /")
		}
	}

	return nil
}

type MetricsConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	PushURL        string `mapstructure:"push_url"`
	PushIntervalMs int    `mapstructure:"push_interval_ms"`
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/Govind-619/BuyMeAChai/utils"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Port string
	Env  string

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBPath     string
	DBTimeout  time.Duration

	RazorpayKeyID     string
	RazorpayKeySecret string
	GatewayTimeout    time.Duration
	DefaultCurrency   string
	ChaiPrice         int64

	SupabaseURL       string
	SupabaseAnonKey   string
	SupabaseJWTSecret string
	AdminUserIDs      []string

	CORSOrigin        string
	APIRateLimit      int
	APIRateWindow     time.Duration
	PaymentRateLimit  int
	PaymentRateWindow time.Duration

	ContributionDedupe bool
	PaymentSimulator   bool

	SMTPHost      string
	SMTPPort      int
	SMTPUsername  string
	SMTPPassword  string
	SMTPFrom      string
	OperatorEmail string

	RabbitMQURL    string
	EventsExchange string

	LogDir string
}

// LoadConfig loads configuration from an optional .env file and the environment
func LoadConfig(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error loading %s: %w", f, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	config := &Config{
		Port: v.GetString("PORT"),
		Env:  v.GetString("ENV"),

		DBDriver:   strings.ToLower(v.GetString("DB_DRIVER")),
		DBHost:     v.GetString("DB_HOST"),
		DBPort:     v.GetString("DB_PORT"),
		DBUser:     v.GetString("DB_USER"),
		DBPassword: v.GetString("DB_PASSWORD"),
		DBName:     v.GetString("DB_NAME"),
		DBSSLMode:  v.GetString("DB_SSLMODE"),
		DBPath:     v.GetString("DB_PATH"),
		DBTimeout:  v.GetDuration("DB_TIMEOUT"),

		RazorpayKeyID:     v.GetString("RAZORPAY_KEY_ID"),
		RazorpayKeySecret: v.GetString("RAZORPAY_KEY_SECRET"),
		GatewayTimeout:    v.GetDuration("GATEWAY_TIMEOUT"),
		DefaultCurrency:   strings.ToUpper(v.GetString("DEFAULT_CURRENCY")),
		ChaiPrice:         v.GetInt64("CHAI_PRICE"),

		SupabaseURL:       strings.TrimRight(v.GetString("SUPABASE_URL"), "/"),
		SupabaseAnonKey:   v.GetString("SUPABASE_ANON_KEY"),
		SupabaseJWTSecret: v.GetString("SUPABASE_JWT_SECRET"),
		AdminUserIDs:      splitList(v.GetString("ADMIN_USER_IDS")),

		CORSOrigin:        v.GetString("CORS_ORIGIN"),
		APIRateLimit:      v.GetInt("API_RATE_LIMIT"),
		APIRateWindow:     v.GetDuration("API_RATE_WINDOW"),
		PaymentRateLimit:  v.GetInt("PAYMENT_RATE_LIMIT"),
		PaymentRateWindow: v.GetDuration("PAYMENT_RATE_WINDOW"),

		ContributionDedupe: v.GetBool("CONTRIBUTION_DEDUPE"),
		PaymentSimulator:   v.GetBool("PAYMENT_SIMULATOR"),

		SMTPHost:      v.GetString("SMTP_HOST"),
		SMTPPort:      v.GetInt("SMTP_PORT"),
		SMTPUsername:  v.GetString("SMTP_USERNAME"),
		SMTPPassword:  v.GetString("SMTP_PASSWORD"),
		SMTPFrom:      v.GetString("SMTP_FROM"),
		OperatorEmail: v.GetString("OPERATOR_EMAIL"),

		RabbitMQURL:    v.GetString("RABBITMQ_URL"),
		EventsExchange: v.GetString("EVENTS_EXCHANGE"),

		LogDir: v.GetString("LOG_DIR"),
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", utils.DefaultPort)
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_HOST", utils.DefaultDBHost)
	v.SetDefault("DB_PORT", utils.DefaultDBPort)
	v.SetDefault("DB_NAME", utils.DefaultDBName)
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_PATH", utils.DefaultSQLitePath)
	v.SetDefault("DB_TIMEOUT", "5s")
	v.SetDefault("GATEWAY_TIMEOUT", "10s")
	v.SetDefault("DEFAULT_CURRENCY", utils.DefaultCurrency)
	v.SetDefault("CHAI_PRICE", utils.DefaultChaiPrice)
	v.SetDefault("API_RATE_LIMIT", 100)
	v.SetDefault("API_RATE_WINDOW", "15m")
	v.SetDefault("PAYMENT_RATE_LIMIT", 20)
	v.SetDefault("PAYMENT_RATE_WINDOW", "1h")
	v.SetDefault("CONTRIBUTION_DEDUPE", false)
	v.SetDefault("PAYMENT_SIMULATOR", false)
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("EVENTS_EXCHANGE", utils.DefaultEventsExchange)
	v.SetDefault("LOG_DIR", utils.DefaultLogDir)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks the settings needed to serve the API
func (c *Config) Validate() error {
	var missing []string
	if c.RazorpayKeyID == "" {
		missing = append(missing, "RAZORPAY_KEY_ID")
	}
	if c.RazorpayKeySecret == "" {
		missing = append(missing, "RAZORPAY_KEY_SECRET")
	}
	if c.SupabaseJWTSecret == "" && c.SupabaseURL == "" {
		missing = append(missing, "SUPABASE_JWT_SECRET or SUPABASE_URL")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required settings: %s", strings.Join(missing, ", "))
	}
	if c.DBDriver != "postgres" && c.DBDriver != "sqlite" {
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if err := utils.ValidateCurrency(c.DefaultCurrency); err != nil {
		return fmt.Errorf("DEFAULT_CURRENCY: %w", err)
	}
	if c.ChaiPrice < 1 {
		return fmt.Errorf("CHAI_PRICE must be at least 1")
	}
	if c.PaymentSimulator && c.IsProduction() {
		return fmt.Errorf("PAYMENT_SIMULATOR cannot be enabled in production")
	}
	return nil
}

// IsProduction reports whether the service runs in production
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// EmailConfig returns the SMTP settings for the operator mailer
func (c *Config) EmailConfig() utils.EmailConfig {
	return utils.EmailConfig{
		Host:     c.SMTPHost,
		Port:     c.SMTPPort,
		Username: c.SMTPUsername,
		Password: c.SMTPPassword,
		From:     c.SMTPFrom,
	}
}

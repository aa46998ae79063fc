package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/you/tutorportal/domain"
)

const (
	DefaultAPIBaseURL = "http://localhost:5000/api"
	DefaultAppName    = "Tutor Portal"
)

type AppConfig struct {
	Name string `yaml:"name"`
	Env  string `yaml:"env"`
}

type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

type OTPConfig struct {
	Countdown string `yaml:"countdown"`
	Length    int    `yaml:"length"`
}

type RoutesConfig struct {
	AdminLogin     string `yaml:"admin_login"`
	ExecutiveLogin string `yaml:"executive_login"`
	StudentLogin   string `yaml:"student_login"`
}

type LoggingConfig struct {
	RollbarToken string `yaml:"rollbar_token"`
	Debug        bool   `yaml:"debug"`
}

type AccessConfig struct {
	Rules []AccessRule `yaml:"rules"`
}

type ConfigFile struct {
	App     AppConfig     `yaml:"app"`
	API     APIConfig     `yaml:"api"`
	OTP     OTPConfig     `yaml:"otp"`
	Routes  RoutesConfig  `yaml:"routes"`
	Logging LoggingConfig `yaml:"logging"`
	Access  AccessConfig  `yaml:"access"`
}

type Config struct {
	AppName      string
	Env          string
	APIBaseURL   string
	HTTPTimeout  time.Duration
	OTPCountdown time.Duration
	OTPLength    int
	LoginRoutes  map[domain.Role]string
	RollbarToken string
	Debug        bool
	AccessRules  []AccessRule
}

// LoginRoute returns the login page for role. Unknown roles land on the admin login.
func (c *Config) LoginRoute(role domain.Role) string {
	if route, ok := c.LoginRoutes[role]; ok && route != "" {
		return route
	}
	return c.LoginRoutes[domain.RoleAdmin]
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads config/config.yml and .env from the working directory
func Load() (*Config, error) {
	return LoadFrom("config/config.yml", ".env")
}

// LoadFrom reads an optional yaml file and an optional dotenv file, then applies
// environment overrides. Missing files fall back to local development defaults.
func LoadFrom(configPath, dotenvPath string) (*Config, error) {
	if dotenvPath != "" {
		if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("could not load env file %s: %w", dotenvPath, err)
		}
	}

	file, err := loadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	timeout, err := time.ParseDuration(env("HTTP_TIMEOUT", orDefault(file.API.Timeout, "30s")))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP timeout: %w", err)
	}

	countdown, err := time.ParseDuration(env("OTP_COUNTDOWN", orDefault(file.OTP.Countdown, "300s")))
	if err != nil {
		return nil, fmt.Errorf("invalid OTP countdown: %w", err)
	}
	if countdown < time.Second {
		return nil, fmt.Errorf("invalid OTP countdown: %s is shorter than one tick", countdown)
	}

	otpLength := file.OTP.Length
	if otpLength == 0 {
		otpLength = 6
	}

	rules := file.Access.Rules
	if len(rules) == 0 {
		rules = DefaultAccessRules()
	}
	for i, rule := range rules {
		if err := rule.Check(); err != nil {
			return nil, fmt.Errorf("invalid access rule %d: %w", i, err)
		}
	}

	return &Config{
		AppName:      env("APP_NAME", orDefault(file.App.Name, DefaultAppName)),
		Env:          env("APP_ENV", orDefault(file.App.Env, "development")),
		APIBaseURL:   strings.TrimRight(env("API_BASE_URL", orDefault(file.API.BaseURL, DefaultAPIBaseURL)), "/"),
		HTTPTimeout:  timeout,
		OTPCountdown: countdown,
		OTPLength:    otpLength,
		LoginRoutes: map[domain.Role]string{
			domain.RoleAdmin:     orDefault(file.Routes.AdminLogin, "/login"),
			domain.RoleExecutive: orDefault(file.Routes.ExecutiveLogin, "/executive/login"),
			domain.RoleStudent:   orDefault(file.Routes.StudentLogin, "/"),
		},
		RollbarToken: env("ROLLBAR_TOKEN", file.Logging.RollbarToken),
		Debug:        file.Logging.Debug || env("DEBUG", "false") == "true",
		AccessRules:  rules,
	}, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	var config ConfigFile
	if path == "" {
		return &config, nil
	}

	bytes, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

package core

import (
	"log"
	"net/mail"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	ServerConfig struct {
		Host            string
		Port            string
		DebugHost       string
		ShutdownTimeout time.Duration
		DisableReqLogs  bool
		AllowOrigins    []string
	}

	AnthropicConfig struct {
		APIKey    string
		BaseURL   string
		Model     string
		Version   string
		MaxTokens int
	}

	SessionsConfig struct {
		MaxAge        time.Duration
		SweepInterval time.Duration
	}

	Config struct {
		AppName          string
		Env              string // DEV (local; default), TEST, QA, PROD
		Build            string
		Debug            bool
		TestMode         bool
		RollbarToken     string
		SendgridApiKey   string
		FrontendBaseURL  string
		AdminServerURL   string // API server the admin CLI talks to; defaults to the local server
		defaultFromEmail string

		Server    ServerConfig
		Anthropic AnthropicConfig
		Sessions  SessionsConfig
	}
)

func (c *Config) Address() string {
	return c.Server.Host + ":" + c.Server.Port
}

func (c *Config) DefaultFromEmail() mail.Address {
	addr, err := mail.ParseAddress(c.defaultFromEmail)
	if err != nil {
		return mail.Address{Name: c.AppName, Address: "noreply@localhost"}
	}
	if addr.Name == "" {
		addr.Name = c.AppName
	}
	return *addr
}

// NewConfig loads the configuration from the environment, after applying any `.env` files found in the working dir.
func NewConfig() *Config {
	env := strings.ToUpper(os.Getenv("ENV"))
	if env == "" {
		env = "DEV"
	}
	loadDotEnv(".env."+strings.ToLower(env), ".env")

	v := viper.New()
	v.SetTypeByDefaultValue(true)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// defaults
	v.SetDefault("debug", env == "DEV")
	v.SetDefault("testMode", env == "TEST")
	v.SetDefault("appName", "Productive Professor")
	v.SetDefault("build", "develop")
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("frontendBaseURL", "http://localhost:3000")
	v.SetDefault("adminServerURL", "")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("sendgridApiKey", "")

	v.SetDefault("server.host", "")
	v.SetDefault("server.port", "3000")
	v.SetDefault("server.debugHost", "localhost:4000")
	v.SetDefault("server.shutdownTimeout", 5*time.Second)
	v.SetDefault("server.disableReqLogs", false)
	v.SetDefault("server.allowOrigins", []string{"*"})

	v.SetDefault("anthropic.apiKey", "")
	v.SetDefault("anthropic.baseURL", "https://api.anthropic.com")
	v.SetDefault("anthropic.model", "claude-3-5-sonnet-20241022")
	v.SetDefault("anthropic.version", "2023-06-01")
	v.SetDefault("anthropic.maxTokens", 1000)

	v.SetDefault("sessions.maxAge", 24*time.Hour)
	v.SetDefault("sessions.sweepInterval", time.Hour)

	// keys that do not follow the KEY_NAME convention
	mustBind(v, "server.port", "PORT")
	mustBind(v, "appName", "APP_NAME")
	mustBind(v, "testMode", "TEST_MODE")
	mustBind(v, "rollbarToken", "ROLLBAR_TOKEN")
	mustBind(v, "sendgridApiKey", "SENDGRID_API_KEY")
	mustBind(v, "defaultFromEmail", "DEFAULT_FROM_EMAIL")
	mustBind(v, "frontendBaseURL", "FRONTEND_BASE_URL")
	mustBind(v, "adminServerURL", "ADMIN_SERVER_URL")
	mustBind(v, "server.debugHost", "SERVER_DEBUG_HOST")
	mustBind(v, "server.shutdownTimeout", "SERVER_SHUTDOWN_TIMEOUT")
	mustBind(v, "server.disableReqLogs", "SERVER_DISABLE_REQ_LOGS")
	mustBind(v, "server.allowOrigins", "SERVER_ALLOW_ORIGINS")
	mustBind(v, "anthropic.apiKey", "ANTHROPIC_API_KEY")
	mustBind(v, "anthropic.baseURL", "ANTHROPIC_BASE_URL")
	mustBind(v, "anthropic.maxTokens", "ANTHROPIC_MAX_TOKENS")
	mustBind(v, "sessions.maxAge", "SESSIONS_MAX_AGE")
	mustBind(v, "sessions.sweepInterval", "SESSIONS_SWEEP_INTERVAL")
	v.AutomaticEnv()

	return &Config{
		AppName:          v.GetString("appName"),
		Env:              env,
		Build:            v.GetString("build"),
		Debug:            v.GetBool("debug"),
		TestMode:         v.GetBool("testMode"),
		RollbarToken:     v.GetString("rollbarToken"),
		SendgridApiKey:   v.GetString("sendgridApiKey"),
		FrontendBaseURL:  v.GetString("frontendBaseURL"),
		AdminServerURL:   v.GetString("adminServerURL"),
		defaultFromEmail: v.GetString("defaultFromEmail"),
		Server: ServerConfig{
			Host:            v.GetString("server.host"),
			Port:            v.GetString("server.port"),
			DebugHost:       v.GetString("server.debugHost"),
			ShutdownTimeout: v.GetDuration("server.shutdownTimeout"),
			DisableReqLogs:  v.GetBool("server.disableReqLogs"),
			AllowOrigins:    v.GetStringSlice("server.allowOrigins"),
		},
		Anthropic: AnthropicConfig{
			APIKey:    v.GetString("anthropic.apiKey"),
			BaseURL:   v.GetString("anthropic.baseURL"),
			Model:     v.GetString("anthropic.model"),
			Version:   v.GetString("anthropic.version"),
			MaxTokens: v.GetInt("anthropic.maxTokens"),
		},
		Sessions: SessionsConfig{
			MaxAge:        v.GetDuration("sessions.maxAge"),
			SweepInterval: v.GetDuration("sessions.sweepInterval"),
		},
	}
}

// loadDotEnv loads the given files if they exist (ignore if they do not).
// Variables already set in the environment are never overridden.
func loadDotEnv(paths ...string) {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			if err := godotenv.Load(p); err != nil {
				log.Fatalf("config.godotenv(%s): %v", p, err)
			}
		} else if !os.IsNotExist(err) {
			log.Fatalf("config.os.Stat(%s): %v", p, err)
		}
	}
}

func mustBind(v *viper.Viper, key, env string) {
	if err := v.BindEnv(key, env); err != nil {
		log.Fatalf("config.BindEnv(%s): %v", key, err)
	}
}

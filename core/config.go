package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	ServerConfig struct {
		Host                      string
		DebugHost                 string
		ShutdownTimeout           time.Duration
		JWTExpirationDelta        time.Duration
		JWTRefreshExpirationDelta time.Duration
	}

	DatabaseConfig struct {
		Engine        string
		Name          string
		Host          string
		Port          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		DisableTLS    bool
	}

	UploadsConfig struct {
		Dir         string
		MaxSize     int64
		AllowedExts []string
	}

	Config struct {
		Env      string // DEV (default), TEST, QA, PROD
		Debug    bool
		TestMode bool
		AppName  string
		Build    string
		WorkDir  string

		SecretKey        string
		FrontendBaseURL  string
		AdminEmail       string
		defaultFromEmail string
		SendgridApiKey   string
		RollbarToken     string

		Server   ServerConfig
		Database DatabaseConfig
		Uploads  UploadsConfig
	}
)

func (c *Config) DefaultFromEmail() mail.Address {
	return mail.Address{Name: c.AppName, Address: c.defaultFromEmail}
}

func (dbc DatabaseConfig) Address() string {
	return dbc.Host + ":" + dbc.Port
}

// NewConfig loads the app configuration from defaults, an optional
// config/.env.<env> file and ENV-prefixed environment variables.
func NewConfig() *Config {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("appName", "Atelier")
	v.SetDefault("build", "dev")
	v.SetDefault("secretKey", "x3(#kd$z&uoqh7!wer)enb$+57=poa5-gm2emyc2")
	v.SetDefault("frontendBaseUrl", "http://localhost:8000")
	v.SetDefault("adminEmail", "admin@localhost")
	v.SetDefault("defaultFromEmail", "noreply@localhost")

	v.SetDefault("serverHost", "0.0.0.0:8000")
	v.SetDefault("serverDebugHost", "0.0.0.0:4000")
	v.SetDefault("serverShutdownTimeout", 5*time.Second)
	v.SetDefault("jwtExpirationDelta", 7*24*time.Hour)
	v.SetDefault("jwtRefreshExpirationDelta", 4*time.Hour)

	v.SetDefault("databaseEngine", "postgres")
	v.SetDefault("databaseName", "atelier")
	v.SetDefault("databaseHost", "localhost")
	v.SetDefault("databasePort", "5432")
	v.SetDefault("databaseUser", "atelier")
	v.SetDefault("databasePassword", "")
	v.SetDefault("databaseDisableTls", true)

	v.SetDefault("uploadsDir", filepath.Join(Getwd(), "uploads"))
	v.SetDefault("uploadsMaxSize", int64(16<<20)) // 16MB
	v.SetDefault("uploadsAllowedExts", []string{"png", "jpg", "jpeg", "gif"})

	env := os.Getenv("ENV")
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	return &Config{
		Env:              env,
		Debug:            v.GetBool("debug"),
		TestMode:         v.GetBool("testMode"),
		AppName:          v.GetString("appName"),
		Build:            v.GetString("build"),
		WorkDir:          Getwd(),
		SecretKey:        v.GetString("secretKey"),
		FrontendBaseURL:  v.GetString("frontendBaseUrl"),
		AdminEmail:       v.GetString("adminEmail"),
		defaultFromEmail: v.GetString("defaultFromEmail"),
		SendgridApiKey:   v.GetString("sendgridApiKey"),
		RollbarToken:     v.GetString("rollbarToken"),
		Server: ServerConfig{
			Host:                      v.GetString("serverHost"),
			DebugHost:                 v.GetString("serverDebugHost"),
			ShutdownTimeout:           v.GetDuration("serverShutdownTimeout"),
			JWTExpirationDelta:        v.GetDuration("jwtExpirationDelta"),
			JWTRefreshExpirationDelta: v.GetDuration("jwtRefreshExpirationDelta"),
		},
		Database: DatabaseConfig{
			Engine:        v.GetString("databaseEngine"),
			Name:          v.GetString("databaseName"),
			Host:          v.GetString("databaseHost"),
			Port:          v.GetString("databasePort"),
			User:          v.GetString("databaseUser"),
			Password:      v.GetString("databasePassword"),
			AdminUser:     v.GetString("databaseAdminUser"),
			AdminPassword: v.GetString("databaseAdminPassword"),
			DisableTLS:    v.GetBool("databaseDisableTls"),
		},
		Uploads: UploadsConfig{
			Dir:         v.GetString("uploadsDir"),
			MaxSize:     v.GetInt64("uploadsMaxSize"),
			AllowedExts: v.GetStringSlice("uploadsAllowedExts"),
		},
	}
}

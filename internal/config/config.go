package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	DB         DBConfig
	Redis      RedisConfig
	Auth       AuthConfig
	Generation GenerationConfig
	Explainer  ExplainerConfig
	Logger     LoggerConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimit    int
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Service  string
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type AuthConfig struct {
	JWTSecret      string
	AccessTokenTTL time.Duration
}

// GenerationConfig holds the defaults and bounds for quiz generation.
type GenerationConfig struct {
	MinWords            int
	DefaultNumQuestions int
	DefaultNumOptions   int
	QuizListCacheTTL    time.Duration
}

// ExplainerConfig configures the optional LLM option explainer.
type ExplainerConfig struct {
	Enabled   bool
	ServerURL string
	Model     string
}

type LoggerConfig struct {
	Level string
	Env   string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		viper.AddConfigPath("../../config")
		viper.AddConfigPath("../../")
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	viper.AutomaticEnv()

	viper.SetDefault("server.port", 8090)
	viper.SetDefault("server.read_timeout", 20)
	viper.SetDefault("server.write_timeout", 20)
	viper.SetDefault("server.body_limit_mb", 10)
	viper.SetDefault("auth.access_token_ttl", 30)
	viper.SetDefault("generation.min_words", 30)
	viper.SetDefault("generation.default_num_questions", 5)
	viper.SetDefault("generation.default_num_options", 4)
	viper.SetDefault("generation.quiz_list_cache_ttl", 300)
	viper.SetDefault("explainer.enabled", false)
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.env", "development")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: viper.GetDuration("server.write_timeout") * time.Second,
			BodyLimit:    viper.GetInt("server.body_limit_mb") * 1024 * 1024,
		},
		DB: DBConfig{
			Host:     viper.GetString("db.host"),
			Port:     viper.GetInt("db.port"),
			User:     viper.GetString("db.user"),
			Password: viper.GetString("db.password"),
			Service:  viper.GetString("db.service"),
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		Auth: AuthConfig{
			JWTSecret:      viper.GetString("auth.jwt_secret"),
			AccessTokenTTL: viper.GetDuration("auth.access_token_ttl") * time.Minute,
		},
		Generation: GenerationConfig{
			MinWords:            viper.GetInt("generation.min_words"),
			DefaultNumQuestions: viper.GetInt("generation.default_num_questions"),
			DefaultNumOptions:   viper.GetInt("generation.default_num_options"),
			QuizListCacheTTL:    viper.GetDuration("generation.quiz_list_cache_ttl") * time.Second,
		},
		Explainer: ExplainerConfig{
			Enabled:   viper.GetBool("explainer.enabled"),
			ServerURL: viper.GetString("explainer.server_url"),
			Model:     viper.GetString("explainer.model"),
		},
		Logger: LoggerConfig{
			Level: viper.GetString("logger.level"),
			Env:   viper.GetString("logger.env"),
		},
	}

	// Environment overrides for deployment
	if host := os.Getenv("DB_HOST"); host != "" {
		config.DB.Host = host
	}
	if user := os.Getenv("DB_USER"); user != "" {
		config.DB.User = user
	}
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		config.DB.Password = password
	}
	if service := os.Getenv("DB_SERVICE"); service != "" {
		config.DB.Service = service
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		config.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.Redis.Password = redisPassword
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		config.Auth.JWTSecret = secret
	}
	if serverURL := os.Getenv("EXPLAINER_SERVER_URL"); serverURL != "" {
		config.Explainer.ServerURL = serverURL
	}

	return config, nil
}

// GetDSN builds the Oracle connection string in go-ora URL form.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("oracle://%s:%s@%s:%d/%s",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Service)
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	ServiceHost string
	ServicePort int
	JWT         JWTConfig
	Redis       RedisConfig
	Minio       MinioConfig
	Mailer      MailerConfig
}

type JWTConfig struct {
	Token         string
	ExpiresIn     time.Duration
	SigningMethod jwt.SigningMethod
}

type RedisConfig struct {
	Host        string
	Password    string
	Port        int
	User        string
	DialTimeout time.Duration
	ReadTimeout time.Duration
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// Время жизни подписанных ссылок на загрузку/скачивание
	URLLifetime time.Duration
}

// MailerConfig — внешний почтовый шлюз для рассылки напоминаний
type MailerConfig struct {
	GatewayURL string
	APIKey     string
	From       string
	Timeout    time.Duration
}

const (
	envRedisHost = "REDIS_HOST"
	envRedisPort = "REDIS_PORT"
	envRedisUser = "REDIS_USER"
	envRedisPass = "REDIS_PASSWORD"

	envMinioEndpoint  = "MINIO_ENDPOINT"
	envMinioAccessKey = "MINIO_ACCESS_KEY"
	envMinioSecretKey = "MINIO_SECRET_KEY"
	envMinioBucket    = "MINIO_BUCKET"

	envJWTSecret = "JWT_SECRET"

	envMailerURL    = "MAILER_GATEWAY_URL"
	envMailerAPIKey = "MAILER_API_KEY"
	envMailerFrom   = "MAILER_FROM"
)

func NewConfig() (*Config, error) {
	var err error

	configName := "config"
	_ = godotenv.Load()
	if os.Getenv("CONFIG_NAME") != "" {
		configName = os.Getenv("CONFIG_NAME")
	}

	viper.SetConfigName(configName)
	viper.SetConfigType("toml")
	viper.AddConfigPath("config")
	viper.AddConfigPath(".")
	viper.WatchConfig()

	err = viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	err = viper.Unmarshal(cfg)
	if err != nil {
		return nil, err
	}

	// Секрет JWT берется из окружения, метод подписи фиксирован
	jwtSecret := os.Getenv(envJWTSecret)
	if jwtSecret == "" {
		return nil, fmt.Errorf("переменная %s не задана", envJWTSecret)
	}
	cfg.JWT = JWTConfig{
		Token:         jwtSecret,
		ExpiresIn:     24 * time.Hour,
		SigningMethod: jwt.SigningMethodHS256,
	}

	// Конфигурация Redis из env
	cfg.Redis.Host = os.Getenv(envRedisHost)
	cfg.Redis.Port, err = strconv.Atoi(os.Getenv(envRedisPort))
	if err != nil {
		return nil, fmt.Errorf("redis port must be int value: %w", err)
	}
	cfg.Redis.Password = os.Getenv(envRedisPass)
	cfg.Redis.User = os.Getenv(envRedisUser)
	cfg.Redis.DialTimeout = 10 * time.Second
	cfg.Redis.ReadTimeout = 10 * time.Second

	// Конфигурация MinIO из env
	cfg.Minio.Endpoint = os.Getenv(envMinioEndpoint)
	cfg.Minio.AccessKey = os.Getenv(envMinioAccessKey)
	cfg.Minio.SecretKey = os.Getenv(envMinioSecretKey)
	cfg.Minio.Bucket = os.Getenv(envMinioBucket)
	if cfg.Minio.Bucket == "" {
		cfg.Minio.Bucket = "amc-documents"
	}
	if cfg.Minio.URLLifetime == 0 {
		cfg.Minio.URLLifetime = time.Hour
	}

	// Почтовый шлюз из env
	cfg.Mailer.GatewayURL = os.Getenv(envMailerURL)
	cfg.Mailer.APIKey = os.Getenv(envMailerAPIKey)
	cfg.Mailer.From = os.Getenv(envMailerFrom)
	if cfg.Mailer.Timeout == 0 {
		cfg.Mailer.Timeout = 10 * time.Second
	}

	log.Info("config parsed")

	return cfg, nil
}

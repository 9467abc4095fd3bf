package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Admin    AdminConfig
	ImageKit ImageKitConfig
}

type ServerConfig struct {
	SecretKey         string
	Port              string
	ExpirationMinutes int
}

type DatabaseConfig struct {
	Host         string
	Username     string
	Password     string
	DatabaseName string
	Port         string
	SSLMode      string
}

// AdminConfig seeds the first admin account at startup when no admin
// exists yet. All three fields must be set for seeding to happen.
type AdminConfig struct {
	Username string
	Email    string
	Password string
}

type ImageKitConfig struct {
	PrivateKey string
	UploadURL  string
	APIURL     string
}

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first if present; real environment
// variables win over it.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Server: ServerConfig{
			SecretKey:         getEnv("SECRET_KEY", "dev-secret"),
			Port:              getEnv("SERVER_PORT", "8080"),
			ExpirationMinutes: getEnvInt("TOKEN_EXPIRATION_MINUTES", 60),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DATABASE_HOST", "localhost"),
			Username:     getEnv("DATABASE_USER", "postgres"),
			Password:     getEnv("DATABASE_PASSWORD", "postgres"),
			DatabaseName: getEnv("DATABASE_NAME", "sweetshop"),
			Port:         getEnv("DATABASE_PORT", "5432"),
			SSLMode:      getEnv("DATABASE_SSLMODE", "disable"),
		},
		Admin: AdminConfig{
			Username: os.Getenv("ADMIN_USERNAME"),
			Email:    os.Getenv("ADMIN_EMAIL"),
			Password: os.Getenv("ADMIN_PASSWORD"),
		},
		ImageKit: ImageKitConfig{
			PrivateKey: os.Getenv("IMAGEKIT_PRIVATE_KEY"),
			UploadURL:  getEnv("IMAGEKIT_UPLOAD_URL", "https://upload.imagekit.io/api/v1/files/upload"),
			APIURL:     getEnv("IMAGEKIT_API_URL", "https://api.imagekit.io/v1/files"),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	ServerPort   string
	DBHost       string
	DBPort       string
	DBUser       string
	DBPassword   string
	DBName       string
	SecretKey    string
	AdminEmail   string
	NATSURL      string
	PostsPerPage int
}

func Load() *Config {
	return &Config{
		ServerPort:   getEnv("SERVER_PORT", "8080"),
		DBHost:       getEnv("DB_HOST", "localhost"),
		DBPort:       getEnv("DB_PORT", "5432"),
		DBUser:       getEnv("DB_USER", "scribe"),
		DBPassword:   getEnv("DB_PASSWORD", "scribe_dev_password"),
		DBName:       getEnv("DB_NAME", "scribe"),
		SecretKey:    getEnv("SECRET_KEY", ""),
		AdminEmail:   getEnv("ADMIN_EMAIL", ""),
		NATSURL:      getEnv("NATS_URL", ""),
		PostsPerPage: getEnvInt("POSTS_PER_PAGE", 20),
	}
}

// DatabaseURL is the pgx connection string for the pool.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

// MigrateURL is the same target under the scheme golang-migrate's pgx
// driver registers.
func (c *Config) MigrateURL() string {
	return fmt.Sprintf("pgx5://%s:%s@%s:%s/%s?sslmode=disable", c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

func getEnv(key, fallback string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}

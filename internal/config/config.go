package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds connection settings for the café database. Database name and
// port come from the command line; host and credentials come from the
// environment, defaulting to the loopback setup the original deployment used.
type Config struct {
	DBName     string
	DBPort     string
	DBHost     string
	DBUser     string
	DBPassword string
}

// Load builds a Config from the two positional arguments (dbname, port) and
// the environment. A .env file in the working directory is honored when
// present; missing files are not an error.
func Load(dbname, port string) *Config {
	_ = godotenv.Load()

	return &Config{
		DBName:     dbname,
		DBPort:     port,
		DBHost:     getEnv("CAFE_DB_HOST", "127.0.0.1"),
		DBUser:     getEnv("CAFE_DB_USER", "postgres"),
		DBPassword: getEnv("CAFE_DB_PASSWORD", ""),
	}
}

// DatabaseURL renders the pgx connection string.
func (c *Config) DatabaseURL() string {
	cred := c.DBUser
	if c.DBPassword != "" {
		cred = c.DBUser + ":" + c.DBPassword
	}
	return fmt.Sprintf("postgres://%s@%s:%s/%s?sslmode=disable", cred, c.DBHost, c.DBPort, c.DBName)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the storefront service.
type Config struct {
	Port      string
	Env       string
	MongoURI  string
	MongoDB   string
	RedisURL  string
	JWTSecret string
	CartTTL   time.Duration

	// Image storage. When S3Bucket is set, uploads go to S3; otherwise
	// they land in UploadDir and are served under /uploads.
	UploadDir string
	S3Bucket  string
	S3Region  string
}

// Load reads configuration from the environment, falling back to
// development defaults. A .env file is honored when present.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:      getEnv("PORT", "8080"),
		Env:       getEnv("APP_ENV", "development"),
		MongoURI:  getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDB:   getEnv("MONGODB_DB", "menswear"),
		RedisURL:  getEnv("REDIS_URL", "redis://localhost:6379"),
		JWTSecret: getEnv("JWT_SECRET", ""),
		CartTTL:   time.Hour * 24 * 7,
		UploadDir: getEnv("UPLOAD_DIR", "uploads"),
		S3Bucket:  getEnv("S3_BUCKET", ""),
		S3Region:  getEnv("AWS_REGION", "us-east-1"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

package config

import (
	"encoding/base64"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port              string
	MongoURI          string
	DBName            string
	JWTSecret         string
	TokenTTL          time.Duration // session token lifetime; revocation is expiry
	AdminEmail        string        // bootstrap admin credentials, seeded on first login
	AdminPass         string
	S3Bucket          string
	S3Region          string
	S3AccessKeyID     string
	S3SecretKey       string
	MaxUploadMB       int64
	MailEncryptionKey []byte // 32 bytes for AES-256; optional, base64 in env
}

func Load() (*Config, error) {
	ttlHours := int64(24)
	if v := getEnv("TOKEN_TTL_HOURS", "24"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			ttlHours = n
		}
	}
	maxMB := int64(200)
	if v := getEnv("MAX_UPLOAD_MB", "200"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			maxMB = n
		}
	}
	var mailEncKey []byte
	if k := getEnv("MAIL_ENCRYPTION_KEY", ""); k != "" {
		mailEncKey, _ = base64.StdEncoding.DecodeString(k)
		if len(mailEncKey) != 32 {
			mailEncKey = nil
		}
	}

	return &Config{
		Port:              getEnv("PORT", "5000"),
		MongoURI:          getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		DBName:            getEnv("MONGODB_DB", "educonnect"),
		JWTSecret:         getEnv("JWT_SECRET", "change-me-in-production"),
		TokenTTL:          time.Duration(ttlHours) * time.Hour,
		AdminEmail:        getEnv("ADMIN_EMAIL", "admin@example.com"),
		AdminPass:         getEnv("ADMIN_PASSWORD", "admin"),
		S3Bucket:          getEnv("AWS_S3_BUCKET", ""),
		S3Region:          getEnv("AWS_REGION", "us-east-1"),
		S3AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		S3SecretKey:       getEnv("AWS_SECRET_ACCESS_KEY", ""),
		MaxUploadMB:       maxMB,
		MailEncryptionKey: mailEncKey,
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// RequiredEnvVars are checked at startup; app exits if any are unset.
var RequiredEnvVars = []string{
	"MONGODB_URI",
	"MONGODB_DB",
	"JWT_SECRET",
	"ADMIN_EMAIL",
	"ADMIN_PASSWORD",
}

// OptionalEnvVars are logged at startup so you can confirm they are loaded when set.
var OptionalEnvVars = []string{
	"PORT",
	"TOKEN_TTL_HOURS",
	"MAX_UPLOAD_MB",
	"AWS_S3_BUCKET",
	"AWS_REGION",
	"AWS_ACCESS_KEY_ID",
	"AWS_SECRET_ACCESS_KEY",
	"MAIL_ENCRYPTION_KEY",
}

var secretEnvVars = map[string]bool{
	"JWT_SECRET":            true,
	"ADMIN_PASSWORD":        true,
	"AWS_ACCESS_KEY_ID":     true,
	"AWS_SECRET_ACCESS_KEY": true,
	"MAIL_ENCRYPTION_KEY":   true,
	"MONGODB_URI":           true,
}

// ValidateEnv checks that all required env vars are set and logs status of
// required + optional. Calls log.Fatal if any required var is missing.
func ValidateEnv() {
	var missing []string
	for _, key := range RequiredEnvVars {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		} else {
			log.Printf("env %s loaded", key)
		}
	}
	if len(missing) > 0 {
		log.Fatalf("missing required env: %s (set these in .env or environment)", strings.Join(missing, ", "))
	}
	for _, key := range OptionalEnvVars {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			log.Printf("env %s not set (optional)", key)
		} else if secretEnvVars[key] {
			log.Printf("env %s loaded", key)
		} else {
			log.Printf("env %s = %s", key, v)
		}
	}
	if os.Getenv("JWT_SECRET") == "change-me-in-production" {
		log.Fatal("JWT_SECRET must be set to a strong secret (not the default change-me-in-production)")
	}
	if k := os.Getenv("MAIL_ENCRYPTION_KEY"); k != "" {
		dec, _ := base64.StdEncoding.DecodeString(k)
		if len(dec) != 32 {
			log.Fatalf("MAIL_ENCRYPTION_KEY must be 32 bytes base64 (got %d bytes); generate with: openssl rand -base64 32", len(dec))
		}
	}
}

package config

import (
	"os"
	"time"
)

var JWTSecret []byte
var JWTExpiration time.Duration

func init() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "kb-cms-dev-secret-change-this-in-production"
	}
	JWTSecret = []byte(secret)
	JWTExpiration = 24 * time.Hour
}

// applyJWT replaces the package-level signing settings with loaded values,
// keeping the init defaults when the file leaves them unset.
func applyJWT(cfg JWTConfig) {
	if cfg.Secret != "" {
		JWTSecret = []byte(cfg.Secret)
	}
	if cfg.Expiration > 0 {
		JWTExpiration = cfg.Expiration
	}
}

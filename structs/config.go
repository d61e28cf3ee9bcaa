package structs

import "time"

type Config struct {
	Server   *ServerConfig
	Cors     *CorsConfig
	Database *DatabaseConfig
	Cache    *CacheConfig
	Auth     *AuthConfig
	Upload   *UploadConfig
	Email    *EmailConfig
}

type ServerConfig struct {
	AppName        string        // Velvetbite
	Environment    string        // development, production
	Port           string        // :8082
	ReadTimeout    time.Duration // in seconds
	WriteTimeout   time.Duration // in seconds
	IdleTimeout    time.Duration // in seconds
	MaxHeaderBytes int           // in bytes
}

type CorsConfig struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	ExposedHeaders   []string
	AllowCredentials bool
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSL          bool
	MaxConns     int
	MinConns     int
	MaxLifetime  time.Duration // in seconds
	MaxIdleTime  time.Duration // in seconds
	ReadTimeout  time.Duration // in seconds
	WriteTimeout time.Duration // in seconds
}

type CacheConfig struct {
	Address      string
	Username     string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	DefaultTTL   time.Duration
}

// AuthConfig holds the single trusted-operator credentials. AdminPassword is
// the plain configured value; AdminPasswordHash, when set, takes precedence
// and must be an argon2id encoded hash.
type AuthConfig struct {
	AdminEmail        string
	AdminPassword     string
	AdminPasswordHash string
	TokenSecret       string
	TokenExpiry       time.Duration
}

type UploadConfig struct {
	Dir           string // base directory for uploaded product images
	MaxImageCount int    // per product, cover included
	MaxImageBytes int64  // per file
}

type EmailConfig struct {
	ApiKey  string
	From    string
	AdminTo string // recipient for order notifications
	Enabled bool
}

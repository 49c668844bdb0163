package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StoreDriverMemory   = "memory"
	StoreDriverPostgres = "postgres"

	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"

	FileStoreLocal  = "local"
	FileStoreGridFS = "gridfs"
)

type Config struct {
	App     AppConfig
	Storage StorageConfig
	DB      DBConfig
	Redis   RedisConfig
	JWT     JWTConfig
	Mongo   MongoConfig
	SMTP    SMTPConfig
	Seed    SeedConfig
}

type AppConfig struct {
	Port          string
	Env           string
	LogLevel      string
	StaticDir     string
	CORSOrigin    string
	CookieSecure  bool
	BcryptCost    int
	RenderTimeout time.Duration
}

type StorageConfig struct {
	Driver          string
	SessionStore    string
	FileStore       string
	PrescriptionDir string
	UploadMaxBytes  int64
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	SessionExpiry time.Duration
}

type MongoConfig struct {
	URI      string
	Database string
	Bucket   string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Enabled reports whether outgoing mail is configured.
func (c SMTPConfig) Enabled() bool {
	return c.Host != "" && c.From != ""
}

// SeedConfig carries the JSON arrays used to pre-populate the stores.
type SeedConfig struct {
	DoctorsJSON       string
	PatientsJSON      string
	ConsultationsJSON string
}

func LoadConfig() (*Config, error) {
	// A missing .env is fine; the process environment still applies.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	return fromViper(v), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "3000")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STATIC_DIR", "public")
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("BCRYPT_COST", 10)
	v.SetDefault("RENDER_TIMEOUT", "10s")

	v.SetDefault("STORE_DRIVER", StoreDriverMemory)
	v.SetDefault("SESSION_STORE", SessionStoreMemory)
	v.SetDefault("FILE_STORE", FileStoreLocal)
	v.SetDefault("PRESCRIPTION_DIR", "public/prescriptions")
	v.SetDefault("UPLOAD_MAX_BYTES", 10*1024*1024)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")

	v.SetDefault("JWT_SECRET", "change-me")
	v.SetDefault("SESSION_EXPIRY", "24h")

	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "telemedicine")
	v.SetDefault("MONGO_BUCKET", "prescriptions")

	v.SetDefault("SMTP_PORT", 587)
}

func fromViper(v *viper.Viper) *Config {
	renderTimeout, err := time.ParseDuration(v.GetString("RENDER_TIMEOUT"))
	if err != nil || renderTimeout <= 0 {
		renderTimeout = 10 * time.Second
	}

	sessionExpiry, err := time.ParseDuration(v.GetString("SESSION_EXPIRY"))
	if err != nil || sessionExpiry <= 0 {
		sessionExpiry = 24 * time.Hour
	}

	return &Config{
		App: AppConfig{
			Port:          v.GetString("APP_PORT"),
			Env:           v.GetString("APP_ENV"),
			LogLevel:      v.GetString("LOG_LEVEL"),
			StaticDir:     v.GetString("STATIC_DIR"),
			CORSOrigin:    v.GetString("CORS_ORIGIN"),
			CookieSecure:  v.GetBool("COOKIE_SECURE"),
			BcryptCost:    v.GetInt("BCRYPT_COST"),
			RenderTimeout: renderTimeout,
		},
		Storage: StorageConfig{
			Driver:          strings.ToLower(v.GetString("STORE_DRIVER")),
			SessionStore:    strings.ToLower(v.GetString("SESSION_STORE")),
			FileStore:       strings.ToLower(v.GetString("FILE_STORE")),
			PrescriptionDir: v.GetString("PRESCRIPTION_DIR"),
			UploadMaxBytes:  v.GetInt64("UPLOAD_MAX_BYTES"),
		},
		DB: DBConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        v.GetString("JWT_SECRET"),
			SessionExpiry: sessionExpiry,
		},
		Mongo: MongoConfig{
			URI:      v.GetString("MONGO_URI"),
			Database: v.GetString("MONGO_DATABASE"),
			Bucket:   v.GetString("MONGO_BUCKET"),
		},
		SMTP: SMTPConfig{
			Host:     v.GetString("SMTP_HOST"),
			Port:     v.GetInt("SMTP_PORT"),
			Username: v.GetString("SMTP_USERNAME"),
			Password: v.GetString("SMTP_PASSWORD"),
			From:     v.GetString("SMTP_FROM"),
		},
		Seed: SeedConfig{
			DoctorsJSON:       v.GetString("DOCTORS_JSON"),
			PatientsJSON:      v.GetString("PATIENTS_JSON"),
			ConsultationsJSON: v.GetString("CONSULTATIONS_JSON"),
		},
	}
}

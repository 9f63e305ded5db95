// internal/config/config.go
package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Brands   BrandsConfig
	Database DatabaseConfig
	Cache    CacheConfig
	Storage  StorageConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

// BrandsConfig maps each supported brand to its historical sales CSV file.
// Empty paths are allowed; brands without a readable file fall back to
// synthetic sample data.
type BrandsConfig struct {
	AdidasPath string
	NikePath   string
	PumaPath   string
	HMPath     string
}

type DatabaseConfig struct {
	Enabled  bool
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type CacheConfig struct {
	Enabled              bool
	RedisURL             string
	RedisHost            string
	RedisPort            string
	RedisPassword        string
	RedisDB              int
	SimulationTTLSeconds int
}

type StorageConfig struct {
	Endpoint    string
	AccessKey   string
	SecretKey   string
	Bucket      string
	Region      string
	UseSSL      bool
	Prefix      string
	DownloadDir string
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		viper.SetDefault("SERVER_PORT", "8000")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("SERVER_READ_TIMEOUT", 30)
		viper.SetDefault("SERVER_WRITE_TIMEOUT", 60)
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
		viper.SetDefault("BRAND_ADIDAS_PATH", "")
		viper.SetDefault("BRAND_NIKE_PATH", "")
		viper.SetDefault("BRAND_PUMA_PATH", "")
		viper.SetDefault("BRAND_H_M_PATH", "")
		viper.SetDefault("DB_ENABLED", false)
		viper.SetDefault("DB_HOST", "localhost")
		viper.SetDefault("DB_PORT", "5432")
		viper.SetDefault("DB_USER", "postgres")
		viper.SetDefault("DB_PASSWORD", "postgres")
		viper.SetDefault("DB_NAME", "inventory_sim")
		viper.SetDefault("DB_SSLMODE", "disable")
		viper.SetDefault("CACHE_ENABLED", false)
		viper.SetDefault("REDIS_URL", "")
		viper.SetDefault("REDIS_HOST", "127.0.0.1")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("CACHE_SIMULATION_TTL_SECONDS", 300)
		viper.SetDefault("STORAGE_ENDPOINT", "")
		viper.SetDefault("STORAGE_ACCESS_KEY", "")
		viper.SetDefault("STORAGE_SECRET_KEY", "")
		viper.SetDefault("STORAGE_BUCKET", "")
		viper.SetDefault("STORAGE_REGION", "")
		viper.SetDefault("STORAGE_USE_SSL", true)
		viper.SetDefault("STORAGE_PREFIX", "sales/")
		viper.SetDefault("STORAGE_DOWNLOAD_DIR", "./data/sales")

		viper.AutomaticEnv()

		instance = &Config{
			Server: ServerConfig{
				Port:           viper.GetString("SERVER_PORT"),
				Mode:           viper.GetString("SERVER_MODE"),
				ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
				WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
				AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			},
			Brands: BrandsConfig{
				AdidasPath: viper.GetString("BRAND_ADIDAS_PATH"),
				NikePath:   viper.GetString("BRAND_NIKE_PATH"),
				PumaPath:   viper.GetString("BRAND_PUMA_PATH"),
				HMPath:     viper.GetString("BRAND_H_M_PATH"),
			},
			Database: DatabaseConfig{
				Enabled:  viper.GetBool("DB_ENABLED"),
				Host:     viper.GetString("DB_HOST"),
				Port:     viper.GetString("DB_PORT"),
				User:     viper.GetString("DB_USER"),
				Password: viper.GetString("DB_PASSWORD"),
				DBName:   viper.GetString("DB_NAME"),
				SSLMode:  viper.GetString("DB_SSLMODE"),
			},
			Cache: CacheConfig{
				Enabled:              viper.GetBool("CACHE_ENABLED"),
				RedisURL:             viper.GetString("REDIS_URL"),
				RedisHost:            viper.GetString("REDIS_HOST"),
				RedisPort:            viper.GetString("REDIS_PORT"),
				RedisPassword:        viper.GetString("REDIS_PASSWORD"),
				RedisDB:              viper.GetInt("REDIS_DB"),
				SimulationTTLSeconds: viper.GetInt("CACHE_SIMULATION_TTL_SECONDS"),
			},
			Storage: StorageConfig{
				Endpoint:    viper.GetString("STORAGE_ENDPOINT"),
				AccessKey:   viper.GetString("STORAGE_ACCESS_KEY"),
				SecretKey:   viper.GetString("STORAGE_SECRET_KEY"),
				Bucket:      viper.GetString("STORAGE_BUCKET"),
				Region:      viper.GetString("STORAGE_REGION"),
				UseSSL:      viper.GetBool("STORAGE_USE_SSL"),
				Prefix:      viper.GetString("STORAGE_PREFIX"),
				DownloadDir: viper.GetString("STORAGE_DOWNLOAD_DIR"),
			},
		}
	})

	return instance
}

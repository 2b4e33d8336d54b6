package configs

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env       string
	DBDriver  string
	DBSource  string
	Port      string
	JWTSecret string
	JWTTTL    time.Duration

	AllowedOrigins []string

	// Broadcast policy
	DefaultBroadcastDuration time.Duration
	MaxBroadcastDuration     time.Duration
	BroadcastSweepInterval   time.Duration

	// Review policy. These are product decisions, not mechanism, so they
	// stay tunable per environment.
	ReviewEditWindow          time.Duration
	VerifiedEncounterRadiusKm float64
	AutoFlagWindow            time.Duration
	AutoFlagOneStarThreshold  int
	AutoFlagVolumeThreshold   int
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	return &Config{
		Env:       getEnv("APP_ENV", "development"),
		DBDriver:  getEnv("DB_DRIVER", "sqlite"),
		DBSource:  getEnv("DB_SOURCE", "marmitas.db"),
		Port:      getEnv("PORT", "8000"),
		JWTSecret: getEnv("JWT_SECRET", "changeme"),
		JWTTTL:    getDuration("JWT_TTL", 24*time.Hour),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),

		DefaultBroadcastDuration: getDuration("BROADCAST_DEFAULT_DURATION", 12*time.Hour),
		MaxBroadcastDuration:     getDuration("BROADCAST_MAX_DURATION", 96*time.Hour),
		BroadcastSweepInterval:   getDuration("BROADCAST_SWEEP_INTERVAL", 5*time.Minute),

		ReviewEditWindow:          getDuration("REVIEW_EDIT_WINDOW", 48*time.Hour),
		VerifiedEncounterRadiusKm: getFloat("VERIFIED_ENCOUNTER_RADIUS_KM", 0.05),
		AutoFlagWindow:            getDuration("AUTO_FLAG_WINDOW", 7*24*time.Hour),
		AutoFlagOneStarThreshold:  getInt("AUTO_FLAG_ONE_STAR_THRESHOLD", 2),
		AutoFlagVolumeThreshold:   getInt("AUTO_FLAG_VOLUME_THRESHOLD", 9),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("invalid duration for %s, using fallback", key)
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if v, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

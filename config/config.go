package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port     string
	Timezone string
	DBPath   string

	AgronomyYAML   string
	CropNeedsCSV   string
	ThresholdsXLSX string

	WeatherAPIKey string
	WeatherURL    string
	WeatherRPS    float64

	RegenCron  string
	EnableAuth bool

	KBAllowedDomains []string
	KBMaxBytes       int64
}

func Load() AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] No .env file found or error loading: %v", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds the config from a lookup function (os.Getenv in production).
func FromEnv(getenv func(string) string) AppConfig {
	get := func(k, def string) string {
		if v := getenv(k); v != "" {
			return v
		}
		return def
	}
	rps, err := strconv.ParseFloat(get("WEATHER_RPS", "1"), 64)
	if err != nil || rps <= 0 {
		log.Printf("[cfg] invalid WEATHER_RPS, using 1")
		rps = 1
	}
	maxBytes, err := strconv.ParseInt(get("KB_MAX_BYTES_PER_PAGE", "1500000"), 10, 64)
	if err != nil || maxBytes <= 0 {
		maxBytes = 1_500_000
	}
	var domains []string
	for _, d := range strings.Split(get("KB_ALLOWED_DOMAINS", ""), ",") {
		if d = strings.ToLower(strings.TrimSpace(d)); d != "" {
			domains = append(domains, d)
		}
	}

	cfg := AppConfig{
		Port:             get("PORT", "8080"),
		Timezone:         get("TZ", "Africa/Lome"),
		DBPath:           get("DB_PATH", "agronome.db"),
		AgronomyYAML:     get("AGRONOMY_YAML", ""),
		CropNeedsCSV:     get("CROP_NEEDS_CSV", ""),
		ThresholdsXLSX:   get("THRESHOLDS_XLSX", ""),
		WeatherAPIKey:    get("OPENWEATHER_API_KEY", ""),
		WeatherURL:       get("OPENWEATHER_URL", "https://api.openweathermap.org/data/2.5"),
		WeatherRPS:       rps,
		RegenCron:        get("REGEN_CRON", ""),
		EnableAuth:       get("ENABLE_AUTH", "false") == "true",
		KBAllowedDomains: domains,
		KBMaxBytes:       maxBytes,
	}
	log.Printf("[cfg] port=%s tz=%s db=%s weather_key=%t regen_cron=%q auth=%t",
		cfg.Port, cfg.Timezone, cfg.DBPath, cfg.WeatherAPIKey != "", cfg.RegenCron, cfg.EnableAuth)
	return cfg
}

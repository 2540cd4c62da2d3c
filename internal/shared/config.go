package shared

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"hotelpoc/internal/domain"
)

// Config is loaded once per process and never reloaded.
type Config struct {
	AppEnv       string `env:"APP_ENV"               env-default:"prod"`
	HTTPAddr     string `env:"HTTP_ADDR"             env-default:":8080"`
	ClientID     string `env:"AMADEUS_CLIENT_ID"`
	ClientSecret string `env:"AMADEUS_CLIENT_SECRET"`
	RPS          int    `env:"AMADEUS_RPS"           env-default:"10"`
	ExportCSV    string `env:"EXPORT_CSV"`
}

// DotEnvFile seeds the environment when present in the working directory.
const DotEnvFile = ".env"

// Load seeds the environment from DotEnvFile when it exists, then reads the
// process environment. Variables already set win over the file.
// Missing Amadeus credentials are a configuration error.
func Load() (Config, error) {
	var c Config
	if _, err := os.Stat(DotEnvFile); err == nil {
		if err := godotenv.Load(DotEnvFile); err != nil {
			return Config{}, fmt.Errorf("%w: read %s: %v", domain.ErrConfiguration, DotEnvFile, err)
		}
	}
	if err := cleanenv.ReadEnv(&c); err != nil {
		return Config{}, fmt.Errorf("%w: %v", domain.ErrConfiguration, err)
	}
	if c.ClientID == "" || c.ClientSecret == "" {
		return Config{}, fmt.Errorf("%w: AMADEUS_CLIENT_ID / AMADEUS_CLIENT_SECRET are missing (environment or %s)",
			domain.ErrConfiguration, DotEnvFile)
	}
	return c, nil
}

// SampleStay returns the check-in/check-out dates used by the offers tool:
// 20 and 22 days from now.
func SampleStay(now time.Time) (string, string) {
	return now.AddDate(0, 0, 20).Format(time.DateOnly), now.AddDate(0, 0, 22).Format(time.DateOnly)
}

// Sample parameters of the command line tools.
var (
	SampleCity     = "PAR"
	SampleHotelIDs = []string{"ARNCEACH", "BWNCE645", "MDNCEMER"}
)

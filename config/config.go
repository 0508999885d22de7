package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config es la configuración completa del analizador.
type Config struct {
	Analyzer AnalyzerConfig `yaml:"analyzer"`
	API      APIConfig      `yaml:"api"`
	Storage  StorageConfig  `yaml:"storage"`
	Suspect  SuspectConfig  `yaml:"suspect"`
	Log      LogConfig      `yaml:"log"`
}

// AnalyzerConfig controla el análisis de historiales de usuario.
type AnalyzerConfig struct {
	Workers int `yaml:"workers"` // pool acotado; el límite real es el rate limit de la API
	// Epsilon es la zona muerta alrededor de cero del clasificador
	// win/loss. Valor heredado del análisis original.
	Epsilon   float64 `yaml:"epsilon"`
	UserLimit int     `yaml:"user_limit"` // 0 = sin límite
}

// APIConfig contiene los base URLs de las APIs.
type APIConfig struct {
	DataBase            string `yaml:"data_base"`
	GammaBase           string `yaml:"gamma_base"`
	RetryBackoffSeconds int    `yaml:"retry_backoff_seconds"` // espera fija tras un 429
}

// StorageConfig controla dónde se persiste el histórico de runs.
type StorageConfig struct {
	DSN string `yaml:"dsn"` // ruta al archivo SQLite, o ":memory:"
}

// SuspectConfig parametriza el scan de traders sospechosos. Los umbrales
// son herencia del análisis original — por eso son config y no constantes.
type SuspectConfig struct {
	WindowDays     int     `yaml:"window_days"`
	MaxMarkets     int     `yaml:"max_markets"`
	LateEntryHours int     `yaml:"late_entry_hours"`
	EarlyExitHours int     `yaml:"early_exit_hours"`
	SettledHi      float64 `yaml:"settled_hi"`
	SettledLo      float64 `yaml:"settled_lo"`
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load carga la configuración desde el archivo YAML y el archivo .env si existe.
// Los valores del .env sobreescriben los del YAML para las keys que correspondan.
func Load(path string) (*Config, error) {
	// Cargar .env si existe (silencia error si no hay archivo)
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	return &cfg, nil
}

// Default devuelve una configuración usable sin archivo YAML.
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

// RetryBackoff devuelve la espera tras un 429 como time.Duration.
func (c *Config) RetryBackoff() time.Duration {
	return time.Duration(c.API.RetryBackoffSeconds) * time.Second
}

// SuspectWindow devuelve la ventana de mercados cerrados como time.Duration.
func (c *Config) SuspectWindow() time.Duration {
	return time.Duration(c.Suspect.WindowDays) * 24 * time.Hour
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están presentes.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

// setDefaults asegura que los valores requeridos tengan valores sensatos.
func setDefaults(cfg *Config) {
	if cfg.Analyzer.Workers <= 0 {
		cfg.Analyzer.Workers = 3
	}
	if cfg.Analyzer.Epsilon <= 0 {
		cfg.Analyzer.Epsilon = 0.01
	}
	if cfg.API.DataBase == "" {
		cfg.API.DataBase = "https://data-api.polymarket.com"
	}
	if cfg.API.GammaBase == "" {
		cfg.API.GammaBase = "https://gamma-api.polymarket.com"
	}
	if cfg.API.RetryBackoffSeconds <= 0 {
		cfg.API.RetryBackoffSeconds = 2
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "metabet.db"
	}
	if cfg.Suspect.WindowDays <= 0 {
		cfg.Suspect.WindowDays = 7
	}
	if cfg.Suspect.MaxMarkets <= 0 {
		cfg.Suspect.MaxMarkets = 25
	}
	if cfg.Suspect.LateEntryHours <= 0 {
		cfg.Suspect.LateEntryHours = 24
	}
	if cfg.Suspect.EarlyExitHours <= 0 {
		cfg.Suspect.EarlyExitHours = 168
	}
	if cfg.Suspect.SettledHi <= 0 {
		cfg.Suspect.SettledHi = 0.98
	}
	if cfg.Suspect.SettledLo <= 0 {
		cfg.Suspect.SettledLo = 0.02
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}

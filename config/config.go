package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all construction-time inputs of the simulation. Everything
// here is static once a simulator is built; changing it requires a reset.
type Config struct {
	ProjectDir string `json:"project_dir"`
	ResultsDir string `json:"results_dir"`
	DataDir    string `json:"data_dir"`

	// Market
	InitialPrice float64 `json:"initial_price"`
	InitialCash  float64 `json:"initial_cash"`

	// Agent roster: names per type. The set of valid types is fixed.
	AgentNames map[string][]string `json:"agent_names"`

	// Oracle
	LLMProvider    string  `json:"llm_provider"`
	Model          string  `json:"model"`
	BackendURL     string  `json:"backend_url"`
	OpenAIAPIKey   string  `json:"openai_api_key"`
	DeepSeekAPIKey string  `json:"deepseek_api_key"`
	OracleTimeout  int     `json:"oracle_timeout_seconds"`
	OfflineOracle  bool    `json:"offline_oracle"`
	FallbackSeed   int64   `json:"fallback_seed"`
	MarketSeed     int64   `json:"market_seed"`

	// Optional live seeding of the initial price and news templates.
	QuoteProvider       string `json:"quote_provider"` // yahoo | longport
	SeedSymbol          string `json:"seed_symbol"`
	AugmentHeadlines    bool   `json:"augment_headlines"`
	LongportAppKey      string `json:"longport_app_key"`
	LongportAppSecret   string `json:"longport_app_secret"`
	LongportAccessToken string `json:"longport_access_token"`

	// Journal
	DBPath string `json:"db_path"`

	Debug            bool `json:"debug"`
	EinoDebugEnabled bool `json:"eino_debug_enabled"`
	EinoDebugPort    int  `json:"eino_debug_port"`
}

// DefaultConfig returns the stock configuration: five agents across the three
// personality types, price 100, cash 10000 each.
func DefaultConfig() *Config {
	currentDir, _ := os.Getwd()

	cfg := &Config{
		ProjectDir: currentDir,
		ResultsDir: filepath.Join(currentDir, "results"),
		DataDir:    filepath.Join(currentDir, "data"),

		InitialPrice: 100.0,
		InitialCash:  10000.0,
		AgentNames: map[string][]string{
			"optimistic":  {"optimistic investor A", "optimistic investor B"},
			"pessimistic": {"pessimistic investor A", "pessimistic investor B"},
			"calm":        {"calm investor A"},
		},

		LLMProvider:   "deepseek",
		Model:         "deepseek-chat",
		BackendURL:    "",
		OracleTimeout: 8,
		OfflineOracle: false,

		QuoteProvider:    "yahoo",
		AugmentHeadlines: false,

		DBPath: filepath.Join(currentDir, "data", "marketmind.db"),

		Debug:            false,
		EinoDebugEnabled: false,
		EinoDebugPort:    52538,
	}

	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()
	cfg.loadFromEnv()

	return cfg
}

func (c *Config) loadFromEnv() {
	if val := os.Getenv("LLM_PROVIDER"); val != "" {
		c.LLMProvider = val
	}
	if val := os.Getenv("LLM_MODEL"); val != "" {
		c.Model = val
	}
	if val := os.Getenv("BACKEND_URL"); val != "" {
		c.BackendURL = val
	}
	if val := os.Getenv("OPENAI_API_KEY"); val != "" {
		c.OpenAIAPIKey = val
	}
	if val := os.Getenv("DEEPSEEK_API_KEY"); val != "" {
		c.DeepSeekAPIKey = val
	}
	if val := os.Getenv("USE_MOCK_LLM"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			c.OfflineOracle = enabled
		}
	}
	if val := os.Getenv("ORACLE_TIMEOUT"); val != "" {
		if v, err := strconv.Atoi(val); err == nil && v > 0 {
			c.OracleTimeout = v
		}
	}
	if val := os.Getenv("INITIAL_PRICE"); val != "" {
		if v, err := strconv.ParseFloat(val, 64); err == nil && v > 0 {
			c.InitialPrice = v
		}
	}
	if val := os.Getenv("INITIAL_CASH"); val != "" {
		if v, err := strconv.ParseFloat(val, 64); err == nil && v >= 0 {
			c.InitialCash = v
		}
	}
	if val := os.Getenv("QUOTE_PROVIDER"); val != "" {
		c.QuoteProvider = val
	}
	if val := os.Getenv("SEED_SYMBOL"); val != "" {
		c.SeedSymbol = val
	}
	if val := os.Getenv("AUGMENT_HEADLINES"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			c.AugmentHeadlines = enabled
		}
	}
	if val := os.Getenv("MARKETMIND_DB"); val != "" {
		c.DBPath = val
	}
	if val := os.Getenv("MARKETMIND_DEBUG"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			c.Debug = enabled
		}
	}
	if val := os.Getenv("EINO_DEBUG_ENABLED"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			c.EinoDebugEnabled = enabled
		}
	}
	if val := os.Getenv("EINO_DEBUG_PORT"); val != "" {
		if port, err := strconv.Atoi(val); err == nil {
			c.EinoDebugPort = port
		}
	}
	if val := os.Getenv("LONGPORT_APP_KEY"); val != "" {
		c.LongportAppKey = val
	}
	if val := os.Getenv("LONGPORT_APP_SECRET"); val != "" {
		c.LongportAppSecret = val
	}
	if val := os.Getenv("LONGPORT_ACCESS_TOKEN"); val != "" {
		c.LongportAccessToken = val
	}
}

// EnsureDirectories creates the working directories the CLI writes into.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.ResultsDir, c.DataDir}
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

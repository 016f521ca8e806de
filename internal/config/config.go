package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/merlocpr-creator/tacticxai-mvp/internal/platform/logging"
	"github.com/merlocpr-creator/tacticxai-mvp/internal/platform/resilience"
)

// FileEnv names the environment variable holding an optional YAML config file path.
const FileEnv = "TACTICAI_CONFIG"

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                     string
	ServiceName                string
	ServiceVersion             string
	HTTPAddr                   string
	MCPAddr                    string
	MCPPath                    string
	ReadTimeout                time.Duration
	WriteTimeout               time.Duration
	CORSAllowedOrigins         []string
	SwaggerEnabled             bool
	LogLevel                   logging.Level
	CacheEnabled               bool
	CacheTTL                   time.Duration
	EventWorkers               int
	DBURL                      string
	DBDisablePreparedBinary    bool
	ArchiveEnabled             bool
	StatsBombBaseURL           string
	StatsBombTimeout           time.Duration
	StatsBombMaxRetries        int
	StatsBombCircuit           resilience.CircuitBreakerConfig
	ChatEnabled                bool
	ChatBaseURL                string
	ChatAPIKey                 string
	ChatModel                  string
	ChatTimeout                time.Duration
	ChatTemperature            float64
	ChatMaxTokens              int
	ChatCircuit                resilience.CircuitBreakerConfig
	MetricsEnabled             bool
	UptraceEnabled             bool
	UptraceDSN                 string
	UptraceLogsEnabled         bool
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
	PprofEnabled               bool
	PprofAddr                  string
}

// Load layers the optional YAML file named by TACTICAI_CONFIG under the process
// environment. Keys are the lower-cased environment names (http_addr, cache_ttl, ...).
func Load() (Config, error) {
	k := koanf.New(".")

	if path := strings.TrimSpace(os.Getenv(FileEnv)); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load %s=%s: %w", FileEnv, path, err)
		}
	}
	if err := k.Load(env.Provider("", ".", strings.ToLower), nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	return load(source{k: k})
}

func load(src source) (Config, error) {
	appEnv, err := parseAppEnv(src.str("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	swaggerDefault := appEnv != EnvProd
	cfg := Config{
		AppEnv:             appEnv,
		ServiceName:        src.str("SERVICE_NAME", "tacticai-api"),
		ServiceVersion:     src.str("SERVICE_VERSION", "dev"),
		HTTPAddr:           src.str("HTTP_ADDR", ":8080"),
		MCPAddr:            src.str("MCP_ADDR", ":8090"),
		MCPPath:            src.str("MCP_PATH", "/mcp"),
		CORSAllowedOrigins: splitCSV(src.str("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:           parseLogLevel(src.str("LOG_LEVEL", "info")),
		DBURL:              src.str("DB_URL", ""),
		StatsBombBaseURL:   src.str("STATSBOMB_BASE_URL", "https://raw.githubusercontent.com/statsbomb/open-data/master/data"),
		ChatBaseURL:        src.str("CHAT_BASE_URL", "https://api.groq.com/openai/v1"),
		ChatAPIKey:         src.str("CHAT_API_KEY", src.str("GROQ_API_KEY", "")),
		ChatModel:          src.str("CHAT_MODEL", "llama-3.1-70b-versatile"),
		UptraceDSN:         src.str("UPTRACE_DSN", parseUptraceDSNFromOTLPHeaders(src.str("OTEL_EXPORTER_OTLP_HEADERS", ""))),
		PyroscopeAuthToken: src.str("PYROSCOPE_AUTH_TOKEN", ""),

		PyroscopeServerAddress:     src.str("PYROSCOPE_SERVER_ADDRESS", ""),
		PyroscopeBasicAuthUser:     src.str("PYROSCOPE_BASIC_AUTH_USER", ""),
		PyroscopeBasicAuthPassword: src.str("PYROSCOPE_BASIC_AUTH_PASSWORD", ""),
		PprofAddr:                  src.str("PPROF_ADDR", ":6060"),
	}
	cfg.PyroscopeAppName = src.str("PYROSCOPE_APP_NAME", cfg.ServiceName)

	if cfg.HTTPAddr == "" {
		return Config{}, fmt.Errorf("HTTP_ADDR cannot be empty")
	}
	if !strings.HasPrefix(cfg.MCPPath, "/") {
		return Config{}, fmt.Errorf("MCP_PATH must start with /")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	if cfg.SwaggerEnabled, err = src.boolean("SWAGGER_ENABLED", swaggerDefault); err != nil {
		return Config{}, err
	}
	if cfg.ReadTimeout, err = src.positiveDuration("READ_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.WriteTimeout, err = src.positiveDuration("WRITE_TIMEOUT", 30*time.Second); err != nil {
		return Config{}, err
	}

	if cfg.CacheEnabled, err = src.boolean("CACHE_ENABLED", true); err != nil {
		return Config{}, err
	}
	if cfg.CacheTTL, err = src.positiveDuration("CACHE_TTL", 10*time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.EventWorkers, err = src.integer("EVENT_WORKERS", 4); err != nil {
		return Config{}, err
	}
	if cfg.EventWorkers < 1 {
		return Config{}, fmt.Errorf("EVENT_WORKERS must be >= 1")
	}

	if cfg.DBDisablePreparedBinary, err = src.boolean("DB_DISABLE_PREPARED_BINARY_RESULT", true); err != nil {
		return Config{}, err
	}
	if cfg.ArchiveEnabled, err = src.boolean("ARCHIVE_ENABLED", false); err != nil {
		return Config{}, err
	}

	if cfg.StatsBombTimeout, err = src.positiveDuration("STATSBOMB_TIMEOUT", 20*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.StatsBombMaxRetries, err = src.integer("STATSBOMB_MAX_RETRIES", 2); err != nil {
		return Config{}, err
	}
	if cfg.StatsBombMaxRetries < 0 {
		return Config{}, fmt.Errorf("STATSBOMB_MAX_RETRIES must be >= 0")
	}
	if cfg.StatsBombCircuit, err = src.circuit("STATSBOMB"); err != nil {
		return Config{}, err
	}

	chatEnabled, err := src.boolean("CHAT_ENABLED", true)
	if err != nil {
		return Config{}, err
	}
	cfg.ChatEnabled = chatEnabled && cfg.ChatAPIKey != ""
	if cfg.ChatTimeout, err = src.positiveDuration("CHAT_TIMEOUT", 30*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.ChatTemperature, err = src.float("CHAT_TEMPERATURE", 0.4); err != nil {
		return Config{}, err
	}
	if cfg.ChatTemperature < 0 || cfg.ChatTemperature > 2 {
		return Config{}, fmt.Errorf("CHAT_TEMPERATURE must be between 0 and 2")
	}
	if cfg.ChatMaxTokens, err = src.integer("CHAT_MAX_TOKENS", 700); err != nil {
		return Config{}, err
	}
	if cfg.ChatMaxTokens < 1 {
		return Config{}, fmt.Errorf("CHAT_MAX_TOKENS must be >= 1")
	}
	if cfg.ChatCircuit, err = src.circuit("CHAT"); err != nil {
		return Config{}, err
	}

	if cfg.MetricsEnabled, err = src.boolean("METRICS_ENABLED", true); err != nil {
		return Config{}, err
	}

	if cfg.UptraceEnabled, err = src.boolean("UPTRACE_ENABLED", false); err != nil {
		return Config{}, err
	}
	if cfg.UptraceEnabled && cfg.UptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	if cfg.UptraceLogsEnabled, err = src.boolean("UPTRACE_LOGS_ENABLED", true); err != nil {
		return Config{}, err
	}

	if cfg.PyroscopeEnabled, err = src.boolean("PYROSCOPE_ENABLED", false); err != nil {
		return Config{}, err
	}
	if cfg.PyroscopeEnabled && cfg.PyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if cfg.PyroscopeUploadRate, err = src.positiveDuration("PYROSCOPE_UPLOAD_RATE", 15*time.Second); err != nil {
		return Config{}, err
	}

	if cfg.PprofEnabled, err = src.boolean("PPROF_ENABLED", false); err != nil {
		return Config{}, err
	}
	if cfg.PprofEnabled && cfg.PprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	return cfg, nil
}

// source reads flat keys from koanf. Blank values fall back to the default.
type source struct {
	k *koanf.Koanf
}

func (s source) str(key, fallback string) string {
	value := strings.TrimSpace(s.k.String(strings.ToLower(key)))
	if value == "" {
		return fallback
	}
	return value
}

func (s source) boolean(key string, fallback bool) (bool, error) {
	raw := s.str(key, "")
	if raw == "" {
		return fallback, nil
	}
	out, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}
	return out, nil
}

func (s source) integer(key string, fallback int) (int, error) {
	raw := s.str(key, "")
	if raw == "" {
		return fallback, nil
	}
	out, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return out, nil
}

func (s source) float(key string, fallback float64) (float64, error) {
	raw := s.str(key, "")
	if raw == "" {
		return fallback, nil
	}
	out, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return out, nil
}

func (s source) positiveDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := s.str(key, "")
	if raw == "" {
		return fallback, nil
	}
	out, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if out <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return out, nil
}

// circuit reads <PREFIX>_CIRCUIT_ENABLED, _FAILURE_COUNT, _OPEN_TIMEOUT and _HALF_OPEN_MAX_REQ.
func (s source) circuit(prefix string) (resilience.CircuitBreakerConfig, error) {
	defaults := resilience.DefaultCircuitBreakerConfig()
	var (
		cfg resilience.CircuitBreakerConfig
		err error
	)

	if cfg.Enabled, err = s.boolean(prefix+"_CIRCUIT_ENABLED", defaults.Enabled); err != nil {
		return cfg, err
	}
	if cfg.FailureThreshold, err = s.integer(prefix+"_CIRCUIT_FAILURE_COUNT", defaults.FailureThreshold); err != nil {
		return cfg, err
	}
	if cfg.FailureThreshold < 1 {
		return cfg, fmt.Errorf("%s_CIRCUIT_FAILURE_COUNT must be >= 1", prefix)
	}
	if cfg.OpenTimeout, err = s.positiveDuration(prefix+"_CIRCUIT_OPEN_TIMEOUT", defaults.OpenTimeout); err != nil {
		return cfg, err
	}
	if cfg.HalfOpenMaxReq, err = s.integer(prefix+"_CIRCUIT_HALF_OPEN_MAX_REQ", defaults.HalfOpenMaxReq); err != nil {
		return cfg, err
	}
	if cfg.HalfOpenMaxReq < 1 {
		return cfg, fmt.Errorf("%s_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1", prefix)
	}
	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/golazozone/prediction-league/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                        string
	ServiceName                   string
	ServiceVersion                string
	HTTPAddr                      string
	DBURL                         string
	DBDisablePreparedBinary       bool
	CacheEnabled                  bool
	CacheTTL                      time.Duration
	CORSAllowedOrigins            []string
	ReadTimeout                   time.Duration
	WriteTimeout                  time.Duration
	PprofEnabled                  bool
	PprofAddr                     string
	SwaggerEnabled                bool
	AuthBaseURL                   string
	AuthIntrospectPath            string
	AuthAdminKey                  string
	AuthTimeout                   time.Duration
	AuthCircuitEnabled            bool
	AuthCircuitFailureCount       int
	AuthCircuitOpenTimeout        time.Duration
	AuthCircuitHalfOpenMaxReq     int
	UptraceEnabled                bool
	UptraceDSN                    string
	UptraceLogsEnabled            bool
	PyroscopeEnabled              bool
	PyroscopeServerAddress        string
	PyroscopeAppName              string
	PyroscopeAuthToken            string
	PyroscopeBasicAuthUser        string
	PyroscopeBasicAuthPassword    string
	PyroscopeUploadRate           time.Duration
	NotifierEnabled               bool
	NotifierBaseURL               string
	NotifierAPIKey                string
	NotifierTimeout               time.Duration
	NotifierCircuitEnabled        bool
	NotifierCircuitFailureCount   int
	NotifierCircuitOpenTimeout    time.Duration
	NotifierCircuitHalfOpenMaxReq int
	InternalJobToken              string
	QStashEnabled                 bool
	QStashBaseURL                 string
	QStashToken                   string
	QStashTargetBaseURL           string
	QStashRetries                 int
	QStashCircuitEnabled          bool
	QStashCircuitFailureCount     int
	QStashCircuitOpenTimeout      time.Duration
	QStashCircuitHalfOpenMaxReq   int
	JobLockInterval               time.Duration
	JobReminderInterval           time.Duration
	ReminderLead                  time.Duration
	LogLevel                      logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	swaggerDefault := "true"
	if appEnv == EnvProd {
		swaggerDefault = "false"
	}

	swaggerEnabled, err := strconv.ParseBool(getEnv("SWAGGER_ENABLED", swaggerDefault))
	if err != nil {
		return Config{}, fmt.Errorf("parse SWAGGER_ENABLED: %w", err)
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}

	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	uptraceLogsEnabled, err := strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	jobLockInterval, err := time.ParseDuration(getEnv("JOB_LOCK_INTERVAL", "2m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse JOB_LOCK_INTERVAL: %w", err)
	}
	if jobLockInterval <= 0 {
		return Config{}, fmt.Errorf("JOB_LOCK_INTERVAL must be > 0")
	}

	jobReminderInterval, err := time.ParseDuration(getEnv("JOB_REMINDER_INTERVAL", "1h"))
	if err != nil {
		return Config{}, fmt.Errorf("parse JOB_REMINDER_INTERVAL: %w", err)
	}
	if jobReminderInterval <= 0 {
		return Config{}, fmt.Errorf("JOB_REMINDER_INTERVAL must be > 0")
	}

	reminderLead, err := time.ParseDuration(getEnv("REMINDER_LEAD", "2h"))
	if err != nil {
		return Config{}, fmt.Errorf("parse REMINDER_LEAD: %w", err)
	}
	if reminderLead <= 0 {
		return Config{}, fmt.Errorf("REMINDER_LEAD must be > 0")
	}

	notifierEnabled, err := strconv.ParseBool(getEnv("NOTIFIER_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse NOTIFIER_ENABLED: %w", err)
	}
	notifierBaseURL := strings.TrimSpace(getEnv("NOTIFIER_BASE_URL", ""))
	notifierAPIKey := strings.TrimSpace(getEnv("NOTIFIER_API_KEY", ""))
	if notifierEnabled {
		if notifierBaseURL == "" {
			return Config{}, fmt.Errorf("NOTIFIER_BASE_URL is required when NOTIFIER_ENABLED=true")
		}
		if notifierAPIKey == "" {
			return Config{}, fmt.Errorf("NOTIFIER_API_KEY is required when NOTIFIER_ENABLED=true")
		}
	}
	notifierTimeout, err := time.ParseDuration(getEnv("NOTIFIER_TIMEOUT", "5s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse NOTIFIER_TIMEOUT: %w", err)
	}
	if notifierTimeout <= 0 {
		return Config{}, fmt.Errorf("NOTIFIER_TIMEOUT must be > 0")
	}
	notifierCircuitEnabled, err := strconv.ParseBool(getEnv("NOTIFIER_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse NOTIFIER_CIRCUIT_ENABLED: %w", err)
	}
	notifierCircuitFailureCount, err := getEnvAsInt("NOTIFIER_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse NOTIFIER_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if notifierCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("NOTIFIER_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	notifierCircuitOpenTimeout, err := time.ParseDuration(getEnv("NOTIFIER_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse NOTIFIER_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if notifierCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("NOTIFIER_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	notifierCircuitHalfOpenMaxReq, err := getEnvAsInt("NOTIFIER_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse NOTIFIER_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if notifierCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("NOTIFIER_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	qstashEnabled, err := strconv.ParseBool(getEnv("QSTASH_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse QSTASH_ENABLED: %w", err)
	}
	qstashRetries, err := getEnvAsInt("QSTASH_RETRIES", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse QSTASH_RETRIES: %w", err)
	}
	if qstashRetries < 0 {
		return Config{}, fmt.Errorf("QSTASH_RETRIES must be >= 0")
	}
	qstashCircuitEnabled, err := strconv.ParseBool(getEnv("QSTASH_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse QSTASH_CIRCUIT_ENABLED: %w", err)
	}
	qstashCircuitFailureCount, err := getEnvAsInt("QSTASH_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse QSTASH_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if qstashCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("QSTASH_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	qstashCircuitOpenTimeout, err := time.ParseDuration(getEnv("QSTASH_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse QSTASH_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if qstashCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("QSTASH_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	qstashCircuitHalfOpenMaxReq, err := getEnvAsInt("QSTASH_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse QSTASH_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if qstashCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("QSTASH_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}
	qstashBaseURL := strings.TrimSpace(getEnv("QSTASH_BASE_URL", "https://qstash.upstash.io"))
	qstashToken := strings.TrimSpace(getEnv("QSTASH_TOKEN", ""))
	qstashTargetBaseURL := strings.TrimSpace(getEnv("QSTASH_TARGET_BASE_URL", ""))
	internalJobToken := strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", ""))
	if qstashEnabled {
		if qstashToken == "" {
			return Config{}, fmt.Errorf("QSTASH_TOKEN is required when QSTASH_ENABLED=true")
		}
		if qstashTargetBaseURL == "" {
			return Config{}, fmt.Errorf("QSTASH_TARGET_BASE_URL is required when QSTASH_ENABLED=true")
		}
		if internalJobToken == "" {
			return Config{}, fmt.Errorf("INTERNAL_JOB_TOKEN is required when QSTASH_ENABLED=true")
		}
	}

	cfg := Config{
		AppEnv:                        appEnv,
		ServiceName:                   getEnv("APP_SERVICE_NAME", "prediction-league-api"),
		ServiceVersion:                getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                      getEnv("APP_HTTP_ADDR", ":8080"),
		DBURL:                         getEnv("DB_URL", ""),
		CORSAllowedOrigins:            splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		PprofEnabled:                  pprofEnabled,
		PprofAddr:                     pprofAddr,
		SwaggerEnabled:                swaggerEnabled,
		AuthBaseURL:                   getEnv("AUTHSVC_BASE_URL", "http://localhost:8081"),
		AuthIntrospectPath:            getEnv("AUTHSVC_INTROSPECT_PATH", "/v1/auth/introspect"),
		AuthAdminKey:                  getEnv("AUTHSVC_ADMIN_KEY", ""),
		UptraceEnabled:                uptraceEnabled,
		UptraceDSN:                    uptraceDSN,
		UptraceLogsEnabled:            uptraceLogsEnabled,
		PyroscopeEnabled:              pyroscopeEnabled,
		PyroscopeServerAddress:        pyroscopeServerAddress,
		PyroscopeAuthToken:            strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:        strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword:    strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:           pyroscopeUploadRate,
		NotifierEnabled:               notifierEnabled,
		NotifierBaseURL:               notifierBaseURL,
		NotifierAPIKey:                notifierAPIKey,
		NotifierTimeout:               notifierTimeout,
		NotifierCircuitEnabled:        notifierCircuitEnabled,
		NotifierCircuitFailureCount:   notifierCircuitFailureCount,
		NotifierCircuitOpenTimeout:    notifierCircuitOpenTimeout,
		NotifierCircuitHalfOpenMaxReq: notifierCircuitHalfOpenMaxReq,
		InternalJobToken:              internalJobToken,
		QStashEnabled:                 qstashEnabled,
		QStashBaseURL:                 qstashBaseURL,
		QStashToken:                   qstashToken,
		QStashTargetBaseURL:           qstashTargetBaseURL,
		QStashRetries:                 qstashRetries,
		QStashCircuitEnabled:          qstashCircuitEnabled,
		QStashCircuitFailureCount:     qstashCircuitFailureCount,
		QStashCircuitOpenTimeout:      qstashCircuitOpenTimeout,
		QStashCircuitHalfOpenMaxReq:   qstashCircuitHalfOpenMaxReq,
		JobLockInterval:               jobLockInterval,
		JobReminderInterval:           jobReminderInterval,
		ReminderLead:                  reminderLead,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}
	cfg.DBDisablePreparedBinary = dbDisablePreparedBinary

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}
	cfg.CacheEnabled = cacheEnabled
	cfg.CacheTTL = cacheTTL

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	authTimeout, err := time.ParseDuration(getEnv("AUTHSVC_TIMEOUT", "3s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse AUTHSVC_TIMEOUT: %w", err)
	}

	authCircuitEnabled, err := strconv.ParseBool(getEnv("AUTHSVC_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse AUTHSVC_CIRCUIT_ENABLED: %w", err)
	}

	authCircuitFailureCount, err := getEnvAsInt("AUTHSVC_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse AUTHSVC_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if authCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("AUTHSVC_CIRCUIT_FAILURE_COUNT must be >= 1")
	}

	authCircuitOpenTimeout, err := time.ParseDuration(getEnv("AUTHSVC_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse AUTHSVC_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if authCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("AUTHSVC_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}

	authCircuitHalfOpenMaxReq, err := getEnvAsInt("AUTHSVC_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse AUTHSVC_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if authCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("AUTHSVC_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	logLevel := parseLogLevel(getEnv("APP_LOG_LEVEL", "info"))

	cfg.ReadTimeout = readTimeout
	cfg.WriteTimeout = writeTimeout
	cfg.AuthTimeout = authTimeout
	cfg.AuthCircuitEnabled = authCircuitEnabled
	cfg.AuthCircuitFailureCount = authCircuitFailureCount
	cfg.AuthCircuitOpenTimeout = authCircuitOpenTimeout
	cfg.AuthCircuitHalfOpenMaxReq = authCircuitHalfOpenMaxReq
	cfg.LogLevel = logLevel

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

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
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

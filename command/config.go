package command

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	envparse "github.com/hashicorp/go-envparse"
)

// Environment variables the fleet binary understands. An optional env file
// (-env-file) is parsed with go-envparse and overrides the process
// environment.
const (
	EnvLogLevel = "FLEET_LOG_LEVEL"

	// Shared TLS material paths.
	EnvSSLCertFile       = "SSL_CERT_FILE"
	EnvSSLKeyFile        = "SSL_KEY_FILE"
	EnvSSLClientCertFile = "SSL_CLIENT_CERT_FILE"

	// Node agent.
	EnvNodeGRPCPort = "NODE_GRPC_PORT"
	EnvNodeToken    = "FLEET_NODE_TOKEN"
	EnvDataDir      = "FLEET_DATA_DIR"

	// Panel.
	EnvDatabasePath         = "FLEET_DATABASE_PATH"
	EnvAuthAlgorithm        = "AUTH_GENERATION_ALGORITHM"
	EnvDisableUsageRecord   = "DISABLE_RECORDING_NODE_USAGE"
	EnvRecordUsagesInterval = "TASKS_RECORD_USER_USAGES_INTERVAL"
)

const (
	defaultNodePort     = 62050
	defaultDataDir      = "/var/lib/fleet"
	defaultDatabasePath = "fleet.db"
)

// loadEnv returns the process environment, overlaid with the given env file
// when one is named.
func loadEnv(path string) (map[string]string, error) {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}

	if path == "" {
		return env, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open env file: %w", err)
	}
	defer f.Close()

	parsed, err := envparse.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse env file %q: %w", path, err)
	}
	for k, v := range parsed {
		env[k] = v
	}
	return env, nil
}

func envDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok && v != "" {
		return v
	}
	return fallback
}

func envInt(env map[string]string, key string, fallback int) (int, error) {
	v, ok := env[key]
	if !ok || v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func envBool(env map[string]string, key string) bool {
	switch strings.ToLower(env[key]) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// envDuration accepts a Go duration ("30s", "2m") or a bare number of
// seconds.
func envDuration(env map[string]string, key string, fallback time.Duration) (time.Duration, error) {
	v, ok := env[key]
	if !ok || v == "" {
		return fallback, nil
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d, nil
	}
	secs, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: not a duration or seconds value: %q", key, v)
	}
	return time.Duration(secs) * time.Second, nil
}

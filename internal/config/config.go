package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DataDir             string
	DatabasePath        string
	SupabaseURL         string
	SupabaseAnonKey     string
	SupabaseAccessToken string
	SupabaseUserID      string
	ProbeURL            string
	ProbeInterval       time.Duration
	SyncInterval        time.Duration
	APIPort             string
}

func ProcessEnvironmentVariables() (*Config, error) {
	// A .env file is optional; deployments normally use the process environment.
	_ = godotenv.Load()

	env := Config{
		DataDir:       "./data",
		DatabasePath:  "./data/duittracker.db",
		ProbeInterval: 15 * time.Second,
		SyncInterval:  time.Minute,
		APIPort:       "9447",
	}

	envDataDir := os.Getenv("DUIT_DATA_DIR")
	envDatabasePath := os.Getenv("DUIT_DATABASE_PATH")
	envSupabaseURL := os.Getenv("SUPABASE_URL")
	envSupabaseAnonKey := os.Getenv("SUPABASE_ANON_KEY")
	envSupabaseAccessToken := os.Getenv("SUPABASE_ACCESS_TOKEN")
	envSupabaseUserID := os.Getenv("SUPABASE_USER_ID")
	envProbeURL := os.Getenv("DUIT_PROBE_URL")
	envProbeInterval := os.Getenv("DUIT_PROBE_INTERVAL")
	envSyncInterval := os.Getenv("DUIT_SYNC_INTERVAL")
	envAPIPort := os.Getenv("DUIT_API_PORT")

	if len(envDataDir) != 0 {
		env.DataDir = envDataDir
	}

	if len(envDatabasePath) != 0 {
		env.DatabasePath = envDatabasePath
	}

	if len(envSupabaseURL) != 0 {
		env.SupabaseURL = envSupabaseURL
	}

	if len(envSupabaseAnonKey) != 0 {
		env.SupabaseAnonKey = envSupabaseAnonKey
	}

	if len(envSupabaseAccessToken) != 0 {
		env.SupabaseAccessToken = envSupabaseAccessToken
	}

	if len(envSupabaseUserID) != 0 {
		env.SupabaseUserID = envSupabaseUserID
	}

	if len(envProbeURL) != 0 {
		env.ProbeURL = envProbeURL
	} else if len(env.SupabaseURL) != 0 {
		env.ProbeURL = env.SupabaseURL + "/auth/v1/health"
	}

	if len(envProbeInterval) != 0 {
		if parsed, err := time.ParseDuration(envProbeInterval); err == nil {
			env.ProbeInterval = parsed
		}
	}

	if len(envSyncInterval) != 0 {
		if parsed, err := time.ParseDuration(envSyncInterval); err == nil {
			env.SyncInterval = parsed
		}
	}

	if len(envAPIPort) != 0 {
		env.APIPort = envAPIPort
	}

	return &env, nil
}

package config // package config loads application configuration from environment variables

import (
	"log" // log is used to report configuration errors and halt execution
	"os"  // os provides access to environment variables
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The database block is optional: when DB_HOST is
// empty the trip archive is disabled and the system runs purely in memory.
type Config struct {
	Env  string // application environment (e.g. "dev", "prod")
	Port string // HTTP port to listen on

	JWTSecret     string // secret used to sign admin JWTs
	AdminPassword string // plain admin password, hashed once at startup
	AccessTTLMin  int    // admin access token time-to-live in minutes
	BcryptCost    int    // bcrypt cost for hashing the admin password

	DBUser string // trip archive database username
	DBPass string // trip archive database password (optional)
	DBHost string // trip archive database host; empty disables the archive
	DBPort string // trip archive database port
	DBName string // trip archive database name

	PendingQueueCapacity    int // bounded pending request queue size
	RollbackHistoryCapacity int // bounded rollback history size

	SeedDemoData  bool // seed the demo topology at startup
	StartConsumer bool // start the release event consumer
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:           must("APP_ENV"),        // environment (dev/test/prod)
		Port:          must("APP_PORT"),       // port to bind the HTTP server
		JWTSecret:     must("JWT_SECRET"),     // secret used for signing JWTs
		AdminPassword: must("ADMIN_PASSWORD"), // plain admin password, never stored
		AccessTTLMin:  envInt("ACCESS_TOKEN_TTL_MIN", 30),
		BcryptCost:    envInt("BCRYPT_COST", 10),

		DBUser: os.Getenv("DB_USER"),
		DBPass: os.Getenv("DB_PASS"),
		DBHost: os.Getenv("DB_HOST"), // empty means no trip archive
		DBPort: envStr("DB_PORT", "3306"),
		DBName: os.Getenv("DB_NAME"),

		PendingQueueCapacity:    envInt("PENDING_QUEUE_CAPACITY", 100),
		RollbackHistoryCapacity: envInt("ROLLBACK_HISTORY_CAPACITY", 100),

		SeedDemoData:  envBool("SEED_DEMO_DATA", false),
		StartConsumer: envBool("START_QUEUE_CONSUMER", false),
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}


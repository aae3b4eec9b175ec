package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StorageRedis  = "redis"
	StorageMemory = "memory"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)
	DevMode   bool   // enables owner-gate diagnostics in debug logs, insecure cookies

	Storage        string        // "redis" | "memory"
	SeedFile       string        // optional YAML seed catalog, empty = built-in seed
	ResyncInterval time.Duration // interval to reload collections from the store (0 = disabled)
	ViewCacheTTL   time.Duration // TTL of cached catalog views in redis (0 = no cache)

	SearchDebounce     time.Duration // quiet period before a browse session settles its query
	SessionIdleTimeout time.Duration // browse sessions idle longer than this are dropped
	SessionGCInterval  time.Duration // how often idle browse sessions are swept

	// Owner gate
	OwnerPassword     string // plaintext secret configured at deploy time (optional)
	OwnerPasswordHash string // sha256 hex or bcrypt hash (optional)
	SessionKey        string // cookie signing key, random when empty
	SecureCookies     bool   // mark cookies Secure (HTTPS deployments)
	LoginBurst        int    // login attempts allowed per IP before throttling
	LoginRefillPerMin int    // login attempts refilled per minute

	// Redis
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts

	AllowedHosts []string // optional, restrict access to specific Host headers
	AllowedCIDRS []string // optional, restrict owner and infra endpoints to specific IPs/CIDRs
	TrustProxy   bool     // true => trust X-Forwarded-For headers, only behind a proxy that overwrites them (e.g. cloudflared)
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("LEARNTUBE_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("LEARNTUBE_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("LEARNTUBE_LOG_LEVEL", "info"),
		PrettyLog: mustBool("LEARNTUBE_PRETTY_LOG", true),
		DevMode:   mustBool("LEARNTUBE_DEV_MODE", false),

		// Catalog
		Storage:        strings.ToLower(getenv("LEARNTUBE_STORAGE", StorageRedis)),
		SeedFile:       getenv("LEARNTUBE_SEED_FILE", ""),
		ResyncInterval: mustDuration("LEARNTUBE_RESYNC_INTERVAL", 0),
		ViewCacheTTL:   mustDuration("LEARNTUBE_VIEW_CACHE_TTL", time.Minute),

		// Browse sessions
		SearchDebounce:     mustDuration("LEARNTUBE_SEARCH_DEBOUNCE", 300*time.Millisecond),
		SessionIdleTimeout: mustDuration("LEARNTUBE_SESSION_IDLE_TIMEOUT", 30*time.Minute),
		SessionGCInterval:  mustDuration("LEARNTUBE_SESSION_GC_INTERVAL", 5*time.Minute),

		// Owner gate
		OwnerPassword:     unquoteSecret(os.Getenv("LEARNTUBE_OWNER_PASSWORD")),
		OwnerPasswordHash: strings.TrimSpace(getenv("LEARNTUBE_OWNER_PASSWORD_HASH", "")),
		SessionKey:        getenv("LEARNTUBE_SESSION_KEY", ""),
		SecureCookies:     mustBool("LEARNTUBE_SECURE_COOKIES", false),
		LoginBurst:        getenvInt("LEARNTUBE_LOGIN_BURST", 5),
		LoginRefillPerMin: getenvInt("LEARNTUBE_LOGIN_REFILL_PER_MIN", 5),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("LEARNTUBE_ALLOWED_HOSTS", "")),
		AllowedCIDRS: parseAllowedIPs(getenv("LEARNTUBE_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("LEARNTUBE_TRUST_PROXY", false),
	}

	if cfg.Storage != StorageRedis && cfg.Storage != StorageMemory {
		panic(fmt.Sprintf("❌ FATAL: LEARNTUBE_STORAGE must be %q or %q, got %q", StorageRedis, StorageMemory, cfg.Storage))
	}

	if cfg.Storage == StorageRedis {
		loadRedis(cfg)
	}

	if cfg.OwnerPassword == "" && cfg.OwnerPasswordHash == "" {
		log.Printf("[WARN] neither LEARNTUBE_OWNER_PASSWORD nor LEARNTUBE_OWNER_PASSWORD_HASH is set, owner console is locked")
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		log.Printf("[DEBUG] cfg: %+v\n", cfg.Redacted())
	}

	return cfg
}

func loadRedis(cfg *Config) {
	cfg.RedisAddr = requireEnv("LEARNTUBE_REDIS_ADDR")
	cfg.RedisUser = getenv("LEARNTUBE_REDIS_USERNAME", "default")
	cfg.RedisPasswordRequired = mustBool("LEARNTUBE_REDIS_PASSWORD_REQUIRED", true)
	cfg.RedisPassword = getenv("LEARNTUBE_REDIS_PASSWORD", "")
	cfg.RedisDB = requireEnvInt("LEARNTUBE_REDIS_DB")
	cfg.RedisDT = mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second)
	cfg.RedisRT = mustDuration("REDIS_READ_TIMEOUT", 3*time.Second)
	cfg.RedisWT = mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second)
	cfg.RedisMaxWait = mustDuration("REDIS_MAX_WAIT", 10*time.Second)
	cfg.RedisPingTimeout = mustDuration("REDIS_PING_TIMEOUT", 5*time.Second)
	cfg.RedisPoolSize = getenvInt("REDIS_POOL_SIZE", 10)
	cfg.RedisConnectTimeout = mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second)
	cfg.RedisRetryInterval = mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second)
	cfg.RedisWarnThreshold = getenvInt("REDIS_WARN_THRESHOLD", 3)

	if cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("❌ FATAL: LEARNTUBE_REDIS_PASSWORD is required when LEARNTUBE_REDIS_PASSWORD_REQUIRED=true")
	}
}

// Redacted returns a copy safe to print.
func (c *Config) Redacted() Config {
	cp := *c
	const mask = "***REDACTED***"
	if cp.RedisPassword != "" {
		cp.RedisPassword = mask
	}
	if cp.RedisUser != "" {
		cp.RedisUser = mask
	}
	if cp.OwnerPassword != "" {
		cp.OwnerPassword = mask
	}
	if cp.OwnerPasswordHash != "" {
		cp.OwnerPasswordHash = mask
	}
	if cp.SessionKey != "" {
		cp.SessionKey = mask
	}
	return cp
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func requireEnvInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		panic(fmt.Sprintf("❌ FATAL: Invalid integer value for %s: %s", key, v))
	}
	return i
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}

// unquoteSecret undoes the quoting people add in .env files:
// one leading and one trailing quote, and escaped "$" / "@".
// Example: `'p\$ss\@x'` -> `p$ss@x`
func unquoteSecret(v string) string {
	if v != "" && (v[0] == '"' || v[0] == '\'') {
		v = v[1:]
	}
	if v != "" && (v[len(v)-1] == '"' || v[len(v)-1] == '\'') {
		v = v[:len(v)-1]
	}
	v = strings.TrimSpace(v)
	v = strings.ReplaceAll(v, `\$`, "$")
	v = strings.ReplaceAll(v, `\@`, "@")
	return v
}

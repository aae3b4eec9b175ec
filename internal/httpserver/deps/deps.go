package deps

import (
	"time"

	"github.com/gorilla/securecookie"
	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/learntube/internal/browse"
	"github.com/MrSnakeDoc/learntube/internal/catalog"
	"github.com/MrSnakeDoc/learntube/internal/logger"
	"github.com/MrSnakeDoc/learntube/internal/owner"
	"github.com/MrSnakeDoc/learntube/internal/store"
)

type Deps struct {
	Logger       logger.Logger
	StartTime    time.Time
	Version      string
	Commit       string
	BuildDate    string
	GoVersion    string
	TimeNow      func() time.Time // for testing, defaults to time.Now
	AllowedHosts []string         // Host headers allowed to access the server
	AllowedCIDRS []string         // IPs allowed to access owner and infra endpoints
	TrustProxy   bool             // true if running behind a trusted reverse proxy (e.g., cloudflared)
	DevMode      bool             // log owner-gate diagnostics

	Storage     string        // "redis" | "memory"
	Store       store.Store   // durable backend, pinged by readyz
	RedisClient *redis.Client // nil in memory mode

	Catalog  *catalog.Catalog // single owner of courses, categories and bookmarks
	Browse   *browse.Registry // per-viewer browse sessions
	Gate     *owner.Gate      // owner credential check
	Sessions *owner.Sessions  // owner session cookie

	ViewerCookie  *securecookie.SecureCookie // signs the viewer id cookie
	SecureCookies bool                       // mark cookies Secure

	LoginBurst        int // login attempts allowed per IP before throttling
	LoginRefillPerMin int // login attempts refilled per minute

	ResyncTrigger chan struct{} // Channel to trigger a manual catalog resync
}

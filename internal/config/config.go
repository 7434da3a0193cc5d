package config

import (
	"os"
	"strings"

	_ "github.com/joho/godotenv/autoload" // load .env in dev
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type Config struct {
	Mode      Mode
	HTTPAddr  string
	PublicURL string

	DBDriver string
	DBDSN    string

	BlobDriver   string // fs
	BlobBasePath string

	AuthHMACSecret string

	// The one configured administrator. Every mutating route is gated on
	// the signed-in email matching AdminEmail.
	AdminEmail    string
	AdminUser     string
	AdminPassHash string // bcrypt

	EnableLocalAuth  bool
	EnableGuestAuth  bool
	EnableGoogleAuth bool

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURI  string
	GoogleAllowedHD    string

	CORSOriginsOnline  []string
	CORSOriginsOffline []string

	// Defaults for the solve-session toggles; a session reads them once at start.
	SolveLockAfterAnswer    bool
	SolveShowCorrectOnWrong bool
}

func FromEnv() Config {
	mode := Mode(os.Getenv("MODE"))
	if mode == "" {
		mode = ModeOffline
	}
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	pub := os.Getenv("PUBLIC_URL")
	return Config{
		Mode:      mode,
		HTTPAddr:  addr,
		PublicURL: pub,

		DBDriver: envOr("DB_DRIVER", "sqlite"),
		DBDSN:    envOr("DB_DSN", ""),

		BlobDriver:   envOr("BLOB_DRIVER", "fs"),
		BlobBasePath: envOr("BLOB_BASE_PATH", "./data"),

		AuthHMACSecret: envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),

		AdminEmail:    envOr("ADMIN_EMAIL", "admin@quizforge.local"),
		AdminUser:     envOr("ADMIN_USER", "admin"),
		AdminPassHash: envOr("ADMIN_PASS_HASH", "$2y$12$pyZAiWaTfVtM7UElIRStvOC3gNbnp70nmQU4eYopLGBfCJr1DOvji"),

		EnableLocalAuth:  envBool("ENABLE_LOCAL_AUTH", true),
		EnableGuestAuth:  envBool("ENABLE_GUEST_AUTH", true),
		EnableGoogleAuth: envBool("ENABLE_GOOGLE_AUTH", false),

		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURI:  envOr("GOOGLE_REDIRECT_URI", strings.TrimSuffix(pub, "/")+"/auth/google/callback"),
		GoogleAllowedHD:    os.Getenv("GOOGLE_ALLOWED_HD"),

		CORSOriginsOnline:  csvOr("CORS_ORIGINS_ONLINE", "https://quiz.quizforge.app"),
		CORSOriginsOffline: csvOr("CORS_ORIGINS_OFFLINE", "http://localhost:3000,http://localhost:5173"),

		SolveLockAfterAnswer:    envBool("SOLVE_LOCK_AFTER_ANSWER", true),
		SolveShowCorrectOnWrong: envBool("SOLVE_SHOW_CORRECT_ON_WRONG", true),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type AppConfig struct {
	Port               string
	DBPath             string
	Env                string
	LogLevel           string
	RecommenderRuleset string
	RecommenderURL     string
	CatalogOverrides   string
	KBAllowedDomains   []string
	KBMaxBytesPerPage  int
	RequireSession     bool
	StaticDir          string

	// EnvFile is the .env file that was loaded, empty when there was none.
	EnvFile string
}

func (c AppConfig) Production() bool { return c.Env == "production" }

// Load reads .env (or the files named) into the process environment without
// overriding variables that are already set, then builds the config with
// defaults.
func Load(files ...string) AppConfig {
	envFile := ".env"
	if len(files) > 0 {
		envFile = strings.Join(files, ",")
	}
	if err := godotenv.Load(files...); err != nil {
		envFile = ""
	}

	get := func(k, def string) string {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
		return def
	}
	maxBytes, err := strconv.Atoi(get("KB_MAX_BYTES_PER_PAGE", "1500000"))
	if err != nil || maxBytes <= 0 {
		maxBytes = 1500000
	}

	cfg := AppConfig{
		Port:               get("PORT", "8080"),
		DBPath:             get("DB_PATH", "agriplan.db"),
		Env:                get("APP_ENV", "development"),
		LogLevel:           get("LOG_LEVEL", "info"),
		RecommenderRuleset: get("RECOMMENDER_RULESET", "planner"),
		RecommenderURL:     get("RECOMMENDER_URL", ""),
		CatalogOverrides:   get("CATALOG_OVERRIDES", ""),
		KBAllowedDomains:   splitList(get("KB_ALLOWED_DOMAINS", "www.fao.org,fao.org,www.agriculture.gov.ma")),
		KBMaxBytesPerPage:  maxBytes,
		StaticDir:          get("STATIC_DIR", "static"),
		EnvFile:            envFile,
	}
	cfg.RequireSession = get("REQUIRE_SESSION", strconv.FormatBool(cfg.Production())) == "true"
	return cfg
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Fields renders the config for a startup log line.
func (c AppConfig) Fields() []zap.Field {
	return []zap.Field{
		zap.String("port", c.Port),
		zap.String("db_path", c.DBPath),
		zap.String("env", c.Env),
		zap.String("log_level", c.LogLevel),
		zap.String("ruleset", c.RecommenderRuleset),
		zap.Bool("remote_recommender", c.RecommenderURL != ""),
		zap.String("catalog_overrides", c.CatalogOverrides),
		zap.Strings("kb_allowed_domains", c.KBAllowedDomains),
		zap.Int("kb_max_bytes_per_page", c.KBMaxBytesPerPage),
		zap.Bool("require_session", c.RequireSession),
		zap.String("env_file", c.EnvFile),
	}
}

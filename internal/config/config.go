package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/disgoorg/snowflake/v2"
	"github.com/joho/godotenv"

	"musterbot/internal/domain"
	"musterbot/internal/domain/entities"
	"musterbot/pkg/tz"
)

const (
	defaultDatabaseURL = "sqlite://data/musterbot.db"
	defaultLocale      = "ru"
	defaultTimezone    = tz.Default
	defaultLogLevel    = "info"
)

// Channels regroupe les salons où le bot publie ses panneaux et ses journaux.
// Un id vide désactive la fonctionnalité correspondante.
type Channels struct {
	Main      string // panneau plaintes / suggestions / promotion
	Order     string
	Afk       string
	Group     string
	ReportLog string
	AfkLog    string
	GroupLog  string
}

type Config struct {
	Token       string
	GuildID     string
	DatabaseURL string
	Locale      string
	Timezone    string
	LogLevel    string
	SentryDSN   string
	HTTPAddr    string

	Channels   Channels
	Categories map[entities.TicketKind]string
	PingRoles  map[entities.TicketKind][]string
	Hierarchy  domain.Hierarchy
	RaveRole   string
	Ladder     domain.PromotionLadder
}

// Load charge la configuration depuis les variables d'environnement et la valide.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env est optionnel lorsque les variables sont fournies par l'environnement (Docker, CI, etc.).
		slog.Debug("Pas de fichier .env", "error", err)
	}
	cfg := FromEnv(os.Getenv)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv construit la configuration à partir de getenv, sans validation.
func FromEnv(getenv func(string) string) *Config {
	get := func(key string) string { return strings.TrimSpace(getenv(key)) }
	withDefault := func(key, def string) string {
		if v := get(key); v != "" {
			return v
		}
		return def
	}

	return &Config{
		Token:       get("TOKEN"),
		GuildID:     get("GUILD_ID"),
		DatabaseURL: withDefault("DATABASE_URL", defaultDatabaseURL),
		Locale:      withDefault("LOCALE", defaultLocale),
		Timezone:    withDefault("TIMEZONE", defaultTimezone),
		LogLevel:    withDefault("LOG_LEVEL", defaultLogLevel),
		SentryDSN:   get("SENTRY_DSN"),
		HTTPAddr:    get("HTTP_ADDR"),
		Channels: Channels{
			Main:      get("MAIN_CHANNEL"),
			Order:     get("ORDER_CHANNEL"),
			Afk:       get("AFK_CHANNEL"),
			Group:     get("GROUP_CHANNEL_ID"),
			ReportLog: get("REPORT_LOG_CHANNEL"),
			AfkLog:    get("AFK_LOG_CHANNEL"),
			GroupLog:  get("GROUP_LOG_CHANNEL_ID"),
		},
		Categories: map[entities.TicketKind]string{
			entities.TicketReport:     get("REPORTS_CATEGORY"),
			entities.TicketSuggestion: get("SUGGESTIONS_CATEGORY"),
			entities.TicketOrder:      get("ORDERS_CATEGORY"),
			entities.TicketPromotion:  get("PROMOTIONS_CATEGORY"),
		},
		PingRoles: map[entities.TicketKind][]string{
			entities.TicketReport:     splitList(get("REPORT_PING_ROLES")),
			entities.TicketSuggestion: splitList(get("SUGGESTION_PING_ROLES")),
			entities.TicketOrder:      splitList(get("ORDER_PING_ROLES")),
			entities.TicketPromotion:  splitList(get("PROMOTION_PING_ROLES")),
		},
		Hierarchy: domain.Hierarchy{
			LeadRole:    get("LEAD_ROLE"),
			CallerRole:  get("CALLER_ROLE"),
			Tier1Role:   get("CAPTER_1_LVL"),
			Tier2Role:   get("CAPTER_2_LVL"),
			Tier3Role:   get("CAPTER_3_LVL"),
			ManageRoles: splitList(get("CAPT_MANAGE_ROLES")),
		},
		RaveRole: get("RAVE_ROLE"),
		Ladder: domain.PromotionLadder{
			get("RANK_1"), get("RANK_2"), get("RANK_3"), get("RANK_4"), get("RANK_5"),
		},
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// validate applique toutes les règles sur la configuration chargée.
func (c *Config) validate() error {
	if c.Token == "" {
		return fmt.Errorf("config: TOKEN est requis et ne peut pas être vide")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: LOG_LEVEL invalide (%q), attendu debug, info, warn ou error", c.LogLevel)
	}
	if !strings.HasPrefix(c.DatabaseURL, "sqlite://") &&
		!strings.HasPrefix(c.DatabaseURL, "postgres://") &&
		!strings.HasPrefix(c.DatabaseURL, "postgresql://") {
		return fmt.Errorf("config: DATABASE_URL invalide (%q): sqlite:// ou postgres:// attendu", c.DatabaseURL)
	}

	ids := map[string]string{
		"GUILD_ID":             c.GuildID,
		"MAIN_CHANNEL":         c.Channels.Main,
		"ORDER_CHANNEL":        c.Channels.Order,
		"AFK_CHANNEL":          c.Channels.Afk,
		"GROUP_CHANNEL_ID":     c.Channels.Group,
		"REPORT_LOG_CHANNEL":   c.Channels.ReportLog,
		"AFK_LOG_CHANNEL":      c.Channels.AfkLog,
		"GROUP_LOG_CHANNEL_ID": c.Channels.GroupLog,
		"REPORTS_CATEGORY":     c.Categories[entities.TicketReport],
		"SUGGESTIONS_CATEGORY": c.Categories[entities.TicketSuggestion],
		"ORDERS_CATEGORY":      c.Categories[entities.TicketOrder],
		"PROMOTIONS_CATEGORY":  c.Categories[entities.TicketPromotion],
		"LEAD_ROLE":            c.Hierarchy.LeadRole,
		"CALLER_ROLE":          c.Hierarchy.CallerRole,
		"CAPTER_1_LVL":         c.Hierarchy.Tier1Role,
		"CAPTER_2_LVL":         c.Hierarchy.Tier2Role,
		"CAPTER_3_LVL":         c.Hierarchy.Tier3Role,
		"RAVE_ROLE":            c.RaveRole,
	}
	for i, role := range c.Ladder {
		ids[fmt.Sprintf("RANK_%d", i+1)] = role
	}
	for name, id := range ids {
		if err := checkSnowflake(name, id); err != nil {
			return err
		}
	}

	lists := map[string][]string{
		"REPORT_PING_ROLES":     c.PingRoles[entities.TicketReport],
		"SUGGESTION_PING_ROLES": c.PingRoles[entities.TicketSuggestion],
		"ORDER_PING_ROLES":      c.PingRoles[entities.TicketOrder],
		"PROMOTION_PING_ROLES":  c.PingRoles[entities.TicketPromotion],
		"CAPT_MANAGE_ROLES":     c.Hierarchy.ManageRoles,
	}
	for name, list := range lists {
		for _, id := range list {
			if err := checkSnowflake(name, id); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkSnowflake accepte une valeur vide (fonctionnalité désactivée).
func checkSnowflake(name, value string) error {
	if value == "" {
		return nil
	}
	if _, err := snowflake.Parse(value); err != nil {
		return fmt.Errorf("config: %s doit être un ID Discord (%q): %w", name, value, err)
	}
	return nil
}

package i18n

import (
	"embed"
	"log/slog"

	"github.com/lmittmann/tint"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"

	"musterbot/internal/ports/output"
)

//go:embed active.*.toml
var localeFS embed.FS

var bundles = []string{"active.ru.toml", "active.en.toml"}

var _ output.T = (*Translator)(nil)

// Translator enveloppe le Bundle go-i18n. Un Localizer est gardé par locale.
type Translator struct {
	bundle          *i18n.Bundle
	defaultLanguage language.Tag
}

// NewTranslator charge les fichiers active.*.toml embarqués. Une locale
// illisible retombe sur le russe.
func NewTranslator(defaultLocale string) *Translator {
	tag, err := language.Parse(defaultLocale)
	if err != nil {
		slog.Warn("⚠️ Locale inconnue, russe par défaut", "locale", defaultLocale, tint.Err(err))
		tag = language.Russian
	}
	bundle := i18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, file := range bundles {
		if _, err := bundle.LoadMessageFileFS(localeFS, file); err != nil {
			slog.Error("❌ Chargement des traductions impossible", "file", file, tint.Err(err))
		}
	}

	return &Translator{
		bundle:          bundle,
		defaultLanguage: tag,
	}
}

// T rend key pour locale, puis pour la locale par défaut, et à défaut la clé.
func (t *Translator) T(locale, key string, data map[string]any) string {
	if key == "" {
		return ""
	}

	languages := []string{}
	if locale != "" {
		languages = append(languages, locale)
	}
	languages = append(languages, t.defaultLanguage.String())

	localizer := i18n.NewLocalizer(t.bundle, languages...)
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil {
		slog.Debug("i18n: clé absente", "key", key, "locales", languages, tint.Err(err))
		return key
	}
	return msg
}

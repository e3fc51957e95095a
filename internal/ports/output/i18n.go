package output

// T expose un contrat i18n minimal pour les messages destinés aux utilisateurs.
type T interface {
	// T rend le message identifié par key pour la locale donnée.
	// data alimente les placeholders du template (peut être nil).
	T(locale, key string, data map[string]any) string
}

package discord

import "musterbot/internal/ports/output"

// Texts lie le traducteur à la locale du serveur.
type Texts struct {
	tr     output.T
	locale string
}

func NewTexts(tr output.T, locale string) Texts {
	return Texts{tr: tr, locale: locale}
}

// Get rend key ; la clé elle-même sans traducteur.
func (t Texts) Get(key string, data ...map[string]any) string {
	if t.tr == nil {
		return key
	}
	var d map[string]any
	if len(data) > 0 {
		d = data[0]
	}
	return t.tr.T(t.locale, key, d)
}

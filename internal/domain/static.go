package domain

import "regexp"

// Formats de pseudo reconnus, testés dans l'ordre : "Nom 23134", "Nom|23134",
// "Nom(23134)", "Nom[23134]", "Nom-23134", "Nom#23134", "Nom_23134",
// "Nom•23134", "Nom.23134", puis des chiffres collés en fin de pseudo.
var staticPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\s(\d{4,6})\s*$`),
	regexp.MustCompile(`\|(\d{4,6})\s*$`),
	regexp.MustCompile(`\((\d{4,6})\)\s*$`),
	regexp.MustCompile(`\[(\d{4,6})\]\s*$`),
	regexp.MustCompile(`-(\d{4,6})\s*$`),
	regexp.MustCompile(`#(\d{4,6})\s*$`),
	regexp.MustCompile(`_(\d{4,6})\s*$`),
	regexp.MustCompile(`•(\d{4,6})\s*$`),
	regexp.MustCompile(`\.(\d{4,6})\s*$`),
	regexp.MustCompile(`\s*(\d{4,6})$`),
}

var staticToken = regexp.MustCompile(`\d+`)

// ParseGameStatic extrait le statique de jeu (4 à 6 chiffres) porté en fin
// de pseudo. Renvoie "" s'il n'y en a pas.
func ParseGameStatic(displayName string) string {
	for _, re := range staticPatterns {
		if m := re.FindStringSubmatch(displayName); m != nil {
			return m[1]
		}
	}
	return ""
}

// ExtractStatics renvoie, dans l'ordre et sans doublon, chaque nombre de
// 4 à 6 chiffres présent dans text.
func ExtractStatics(text string) []string {
	var out []string
	seen := map[string]bool{}
	for _, tok := range staticToken.FindAllString(text, -1) {
		if len(tok) < 4 || len(tok) > 6 || seen[tok] {
			continue
		}
		seen[tok] = true
		out = append(out, tok)
	}
	return out
}

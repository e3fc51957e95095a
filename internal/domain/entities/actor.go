package entities

// Actor est le membre à l'origine d'une interaction.
type Actor struct {
	UserID      string
	Username    string
	DisplayName string
	RoleIDs     []string
	IsAdmin     bool
}

// Name renvoie le pseudo affiché, à défaut le nom d'utilisateur.
func (a Actor) Name() string {
	if a.DisplayName != "" {
		return a.DisplayName
	}
	return a.Username
}

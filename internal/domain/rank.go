package domain

import "strings"

// Rank est la préséance d'un membre dans un rassemblement.
// Plus la valeur est basse, plus le rang est élevé.
type Rank int

const (
	RankLead   Rank = 1
	RankCaller Rank = 2
	RankTier1  Rank = 3
	RankTier2  Rank = 4
	RankTier3  Rank = 5
	RankNone   Rank = 6
)

var rankNames = map[Rank]string{
	RankLead:   "lead",
	RankCaller: "caller",
	RankTier1:  "tier1",
	RankTier2:  "tier2",
	RankTier3:  "tier3",
	RankNone:   "none",
}

func (r Rank) String() string {
	if name, ok := rankNames[r]; ok {
		return name
	}
	return "none"
}

// Outranks indique si r passe strictement devant other.
func (r Rank) Outranks(other Rank) bool {
	return r < other
}

// RankFunc résout le rang courant d'un utilisateur.
type RankFunc func(userID string) Rank

// Hierarchy associe les rôles du serveur aux rangs, et liste les rôles
// autorisés à gérer les rassemblements.
type Hierarchy struct {
	LeadRole    string
	CallerRole  string
	Tier1Role   string
	Tier2Role   string
	Tier3Role   string
	ManageRoles []string
}

func (h Hierarchy) bindings() []struct {
	role string
	rank Rank
} {
	return []struct {
		role string
		rank Rank
	}{
		{h.LeadRole, RankLead},
		{h.CallerRole, RankCaller},
		{h.Tier1Role, RankTier1},
		{h.Tier2Role, RankTier2},
		{h.Tier3Role, RankTier3},
	}
}

// Resolve renvoie le meilleur rang porté par roleIDs, RankNone sinon.
func (h Hierarchy) Resolve(roleIDs []string) Rank {
	best := RankNone
	for _, b := range h.bindings() {
		if b.role == "" || !b.rank.Outranks(best) {
			continue
		}
		if hasRole(roleIDs, b.role) {
			best = b.rank
		}
	}
	return best
}

// CanManage : les administrateurs, puis tout porteur d'un rôle de gestion.
func (h Hierarchy) CanManage(roleIDs []string, isAdmin bool) bool {
	if isAdmin {
		return true
	}
	for _, role := range h.ManageRoles {
		if role != "" && hasRole(roleIDs, role) {
			return true
		}
	}
	return false
}

func hasRole(roleIDs []string, role string) bool {
	for _, id := range roleIDs {
		if strings.TrimSpace(id) == role {
			return true
		}
	}
	return false
}

package domain

// PromotionLadder liste les rôles RANK_1 à RANK_5 de la famille.
type PromotionLadder [5]string

// MaxPromotionRank est le rang le plus haut, sans promotion possible.
const MaxPromotionRank = 5

// Current renvoie le rang le plus haut porté (0 si aucun) et le rang visé.
func (l PromotionLadder) Current(roleIDs []string) (current, next int) {
	for rank := MaxPromotionRank; rank >= 1; rank-- {
		role := l[rank-1]
		if role != "" && hasRole(roleIDs, role) {
			current = rank
			break
		}
	}
	if current == 0 || current == MaxPromotionRank {
		return current, 0
	}
	return current, current + 1
}

// Next valide une demande de promotion : ErrPromotionUnavailable sans rang
// ou au rang maximal.
func (l PromotionLadder) Next(roleIDs []string) (current, next int, err error) {
	current, next = l.Current(roleIDs)
	if next == 0 {
		return current, 0, ErrPromotionUnavailable
	}
	return current, next, nil
}

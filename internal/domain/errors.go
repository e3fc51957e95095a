package domain

import "errors"

// Domain errors.
var (
	ErrMusterNotFound       = errors.New("rassemblement non trouvé")
	ErrNotManager           = errors.New("droits de gestion des rassemblements requis")
	ErrInvalidName          = errors.New("le nom doit faire entre 1 et 100 caractères")
	ErrInvalidSlots         = errors.New("le nombre de places doit être au moins 1")
	ErrInvalidDateTime      = errors.New("date et heure invalides (attendu JJ.MM.AAAA HH:MM)")
	ErrMessageGone          = errors.New("message du rassemblement introuvable")
	ErrTicketNotFound       = errors.New("demande non trouvée")
	ErrNotModerator         = errors.New("seul un modérateur peut trancher cette demande")
	ErrReasonRequired       = errors.New("un motif est requis pour un refus")
	ErrUnknownOrderType     = errors.New("type de commande inconnu")
	ErrPromotionUnavailable = errors.New("aucune promotion possible pour ce rang")
	ErrInvalidHours         = errors.New("durée invalide")
	ErrInvalidTime          = errors.New("heure invalide (attendu HH:MM)")
	ErrRateLimited          = errors.New("trop de demandes, réessaie plus tard")
	ErrMemberNotFound       = errors.New("membre non trouvé")
)

var codes = map[error]string{
	ErrMusterNotFound:       "muster_not_found",
	ErrNotManager:           "not_manager",
	ErrInvalidName:          "invalid_name",
	ErrInvalidSlots:         "invalid_slots",
	ErrInvalidDateTime:      "invalid_datetime",
	ErrMessageGone:          "message_gone",
	ErrTicketNotFound:       "ticket_not_found",
	ErrNotModerator:         "not_moderator",
	ErrReasonRequired:       "reason_required",
	ErrUnknownOrderType:     "unknown_order_type",
	ErrPromotionUnavailable: "promotion_unavailable",
	ErrInvalidHours:         "invalid_hours",
	ErrInvalidTime:          "invalid_time",
	ErrRateLimited:          "rate_limited",
	ErrMemberNotFound:       "member_not_found",
}

// Code renvoie le code stable d'une erreur du domaine (éventuellement wrappée),
// ou "" si l'erreur ne provient pas du domaine.
func Code(err error) string {
	if err == nil {
		return ""
	}
	for sentinel, code := range codes {
		if errors.Is(err, sentinel) {
			return code
		}
	}
	return ""
}

package discord

import (
	"strings"

	"musterbot/internal/domain/entities"
)

// MusterAction est l'action portée par un bouton de rassemblement.
type MusterAction string

const (
	MusterJoin  MusterAction = "join"
	MusterExtra MusterAction = "extra"
	MusterLeave MusterAction = "leave"
	MusterClose MusterAction = "close"
)

var musterActions = []MusterAction{MusterJoin, MusterExtra, MusterLeave, MusterClose}

// Identifiants fixes des panneaux et formulaires.
const (
	ReportButtonID     = "report_button"
	SuggestionButtonID = "suggestion_button"
	PromotionButtonID  = "promotion_button"
	AfkButtonID        = "afk_button"
	OrderSelectID      = "order_select"

	ReportModalID     = "report_modal"
	SuggestionModalID = "suggestion_modal"
	PromotionModalID  = "promotion_modal"
	AfkModalID        = "afk_modal"

	orderModalPrefix  = "order_modal_"
	groupButtonPrefix = "group_"
	groupModalPrefix  = "group_modal_"
	rejectModalPrefix = "reject_modal_"
)

// MusterButtonID construit "<action>_<id>".
func MusterButtonID(action MusterAction, musterID string) string {
	return string(action) + "_" + musterID
}

// ParseMusterButton décode un id produit par MusterButtonID.
func ParseMusterButton(customID string) (MusterAction, string, bool) {
	for _, a := range musterActions {
		if id, ok := strings.CutPrefix(customID, string(a)+"_"); ok && id != "" {
			return a, id, true
		}
	}
	return "", "", false
}

func GroupButtonID(kind entities.PingKind) string { return groupButtonPrefix + string(kind) }

func ParseGroupButton(customID string) (entities.PingKind, bool) {
	if strings.HasPrefix(customID, groupModalPrefix) {
		return "", false
	}
	return parsePingKind(customID, groupButtonPrefix)
}

func GroupModalID(kind entities.PingKind) string { return groupModalPrefix + string(kind) }

func ParseGroupModal(customID string) (entities.PingKind, bool) {
	return parsePingKind(customID, groupModalPrefix)
}

func parsePingKind(customID, prefix string) (entities.PingKind, bool) {
	raw, ok := strings.CutPrefix(customID, prefix)
	if !ok {
		return "", false
	}
	for _, k := range entities.PingKinds {
		if string(k) == raw {
			return k, true
		}
	}
	return "", false
}

func OrderModalID(orderType string) string { return orderModalPrefix + orderType }

func ParseOrderModal(customID string) (string, bool) {
	v, ok := strings.CutPrefix(customID, orderModalPrefix)
	return v, ok && v != ""
}

// RejectModalID transporte l'id du bouton de refus jusqu'à la saisie du motif.
func RejectModalID(rejectButtonID string) string { return rejectModalPrefix + rejectButtonID }

func ParseRejectModal(customID string) (string, bool) {
	v, ok := strings.CutPrefix(customID, rejectModalPrefix)
	return v, ok && v != ""
}

// IsDecisionButton reconnaît approve_xxxxxxxx et reject_xxxxxxxx.
func IsDecisionButton(customID string) bool {
	for _, prefix := range []string{entities.ApproveButtonPrefix, entities.RejectButtonPrefix} {
		if rest, ok := strings.CutPrefix(customID, prefix); ok && len(rest) == 8 && isHex(rest) {
			return true
		}
	}
	return false
}

func isHex(s string) bool {
	for _, r := range s {
		if !strings.ContainsRune("0123456789abcdef", r) {
			return false
		}
	}
	return true
}

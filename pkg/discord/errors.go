package discord

import (
	"errors"
	"net/http"

	"github.com/bwmarrin/discordgo"

	"musterbot/internal/domain"
)

// ErrorKey renvoie la clé i18n du message à afficher pour err :
// "errors.<code>" pour une erreur du domaine, "errors.generic" sinon.
func ErrorKey(err error) string {
	if code := domain.Code(err); code != "" {
		return "errors." + code
	}
	return "errors.generic"
}

// IsGone indique que la ressource Discord visée n'existe plus (message ou
// salon supprimé).
func IsGone(err error) bool {
	var rest *discordgo.RESTError
	if !errors.As(err, &rest) {
		return false
	}
	if rest.Message != nil {
		switch rest.Message.Code {
		case discordgo.ErrCodeUnknownMessage, discordgo.ErrCodeUnknownChannel:
			return true
		}
	}
	return rest.Response != nil && rest.Response.StatusCode == http.StatusNotFound
}

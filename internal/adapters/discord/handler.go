package discord

import (
	"musterbot/internal/config"
	"musterbot/internal/ports/input"
	pkgdiscord "musterbot/pkg/discord"
)

// Services regroupe les cas d'usage appelés par le handler.
type Services struct {
	Musters input.MusterUseCase
	Tickets input.TicketUseCase
	Members input.MemberUseCase
	Afk     input.AfkUseCase
	Pings   input.PingUseCase
}

// Handler traite les interactions Discord à l'aide des cas d'usage.
type Handler struct {
	musters  input.MusterUseCase
	tickets  input.TicketUseCase
	members  input.MemberUseCase
	afk      input.AfkUseCase
	pings    input.PingUseCase
	board    *MusterBoard
	tx       pkgdiscord.Texts
	channels config.Channels
}

func NewHandler(svc Services, board *MusterBoard, tx pkgdiscord.Texts, channels config.Channels) *Handler {
	return &Handler{
		musters:  svc.Musters,
		tickets:  svc.Tickets,
		members:  svc.Members,
		afk:      svc.Afk,
		pings:    svc.Pings,
		board:    board,
		tx:       tx,
		channels: channels,
	}
}

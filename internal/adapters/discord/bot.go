package discord

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/lmittmann/tint"

	"musterbot/internal/application"
	"musterbot/internal/config"
	"musterbot/internal/infrastructure/database"
	"musterbot/internal/ports/input"
	"musterbot/internal/ports/output"
	pkgdiscord "musterbot/pkg/discord"
)

const (
	submitEvery = 30 * time.Second
	submitBurst = 2
)

// Bot est l'adaptateur Discord.
type Bot struct {
	session *discordgo.Session
	config  *config.Config
	handler *Handler
}

// NewBot crée la session et câble les ports : adaptateurs de sortie ->
// services applicatifs -> handler.
func NewBot(cfg *config.Config, store *database.Store, tr output.T, loc *time.Location) (*Bot, error) {
	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("discord session: %w", err)
	}
	s.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildMessages

	tx := pkgdiscord.NewTexts(tr, cfg.Locale)
	board := &MusterBoard{session: s, tx: tx, loc: loc, raveRole: cfg.RaveRole}
	desk := &TicketDesk{
		session:    s,
		tx:         tx,
		categories: cfg.Categories,
		pingRoles:  cfg.PingRoles,
		logChannel: cfg.Channels.ReportLog,
	}
	pingBoard := &PingBoard{session: s, tx: tx, raveRole: cfg.RaveRole, logChannel: cfg.Channels.GroupLog}
	afkLog := &AfkLog{session: s, tx: tx, channelID: cfg.Channels.AfkLog}

	limiter := application.NewUserLimiter(submitEvery, submitBurst)
	members := application.NewMemberService(store.Members)
	musters := application.NewMusterService(store.Musters, board, &MemberDirectory{session: s}, cfg.Hierarchy, loc)
	tickets := application.NewTicketService(store.Tickets, desk, members, cfg.PingRoles, cfg.Ladder, limiter)
	afk := application.NewAfkService(afkLog, limiter)
	pings := application.NewPingService(store.Pings, pingBoard, limiter)

	handler := NewHandler(Services{
		Musters: musters,
		Tickets: tickets,
		Members: members,
		Afk:     afk,
		Pings:   pings,
	}, board, tx, cfg.Channels)

	bot := &Bot{
		session: s,
		config:  cfg,
		handler: handler,
	}
	bot.setupHandlers()
	return bot, nil
}

// Musters et Members sont partagés avec l'API de statut.
func (b *Bot) Musters() input.MusterUseCase { return b.handler.musters }
func (b *Bot) Members() input.MemberUseCase { return b.handler.members }

func (b *Bot) setupHandlers() {
	b.session.AddHandler(b.handleInteraction)
	b.session.AddHandler(b.handler.HandleReady)
	b.session.AddHandler(b.handler.HandleMemberAdd)
	b.session.AddHandler(b.handler.HandleMemberUpdate)
	b.session.AddHandler(b.handler.HandleMemberRemove)
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Member == nil {
		// Les commandes et boutons n'ont de sens que sur le serveur.
		return
	}
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		if i.ApplicationCommandData().Name == musterCommandName {
			b.handler.HandleCommand(s, i)
		}
	case discordgo.InteractionModalSubmit:
		b.handler.HandleModalSubmit(s, i)
	case discordgo.InteractionMessageComponent:
		b.handler.HandleComponent(s, i)
	}
}

// Start restaure les rassemblements, ouvre la session et enregistre la
// commande, puis bloque jusqu'à l'annulation de ctx.
func (b *Bot) Start(ctx context.Context) error {
	restored, err := b.handler.musters.Restore(ctx)
	if err != nil {
		return fmt.Errorf("restore musters: %w", err)
	}
	slog.InfoContext(ctx, "♻️ Rassemblements restaurés", "count", restored)

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("erreur lors de l'ouverture de la session: %w", err)
	}
	defer b.session.Close()

	cmd := musterCommand(b.handler.tx)
	if _, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.config.GuildID, cmd); err != nil {
		slog.WarnContext(ctx, "⚠️ Erreur lors de l'enregistrement de la commande", "command", cmd.Name, tint.Err(err))
	}

	slog.InfoContext(ctx, "🤖 Bot en ligne", "user", b.session.State.User.Username)
	<-ctx.Done()
	slog.Info("👋 Arrêt du bot")
	return nil
}

// RunScheduler lance les tâches périodiques jusqu'à l'annulation de ctx.
func (b *Bot) RunScheduler(ctx context.Context) error {
	b.handler.RunScheduledTasks(ctx)
	return nil
}

// Nick > GlobalName > Username
func resolveDisplayName(member *discordgo.Member) string {
	if member == nil || member.User == nil {
		return ""
	}
	if member.Nick != "" {
		return member.Nick
	}
	if member.User.GlobalName != "" {
		return member.User.GlobalName
	}
	return member.User.Username
}

func roleMentions(roleIDs []string) string {
	mentions := make([]string, 0, len(roleIDs))
	for _, id := range roleIDs {
		if id != "" {
			mentions = append(mentions, "<@&"+id+">")
		}
	}
	return strings.Join(mentions, " ")
}

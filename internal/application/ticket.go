package application

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lmittmann/tint"

	"musterbot/internal/domain"
	"musterbot/internal/domain/entities"
	"musterbot/internal/ports/input"
	"musterbot/internal/ports/output"
)

const (
	FieldOrderType   = entities.FieldOrderType
	FieldOrderPrice  = entities.FieldOrderPrice
	FieldStatics     = entities.FieldStatics
	FieldStaticUsers = entities.FieldStaticUsers
	FieldRankCurrent = entities.FieldRankCurrent
	FieldRankNext    = entities.FieldRankNext
)

var _ input.TicketUseCase = (*TicketService)(nil)

// TicketService ouvre les demandes (plainte, suggestion, commande, promotion)
// et enregistre les décisions des modérateurs.
type TicketService struct {
	repo       output.TicketRepository
	desk       output.TicketDesk
	members    input.MemberUseCase
	moderators map[entities.TicketKind][]string
	ladder     domain.PromotionLadder
	limiter    *UserLimiter
	now        func() time.Time
	newID      func() string

	mu       sync.Mutex
	deciding map[string]struct{} // demandes en cours de décision, par message
}

// NewTicketService : moderators associe chaque type aux rôles notifiés et
// habilités à trancher.
func NewTicketService(
	repo output.TicketRepository,
	desk output.TicketDesk,
	members input.MemberUseCase,
	moderators map[entities.TicketKind][]string,
	ladder domain.PromotionLadder,
	limiter *UserLimiter,
) *TicketService {
	return &TicketService{
		repo:       repo,
		desk:       desk,
		members:    members,
		moderators: moderators,
		ladder:     ladder,
		limiter:    limiter,
		now:        time.Now,
		newID:      func() string { return strings.ReplaceAll(uuid.NewString(), "-", "")[:8] },
		deciding:   make(map[string]struct{}),
	}
}

func (s *TicketService) CanRequestPromotion(actor entities.Actor) (current, next int, err error) {
	return s.ladder.Next(actor.RoleIDs)
}

func (s *TicketService) Open(ctx context.Context, in input.OpenTicketInput) (*entities.Ticket, error) {
	if !in.Kind.Valid() {
		return nil, fmt.Errorf("open ticket: unknown kind %q", in.Kind)
	}
	if !s.limiter.Allow(in.Author.UserID) {
		return nil, domain.ErrRateLimited
	}

	fields := slices.Clone(in.Fields)
	switch in.Kind {
	case entities.TicketOrder:
		order, err := domain.LookupOrder(in.OrderType)
		if err != nil {
			return nil, err
		}
		fields = append([]entities.TicketField{{Key: FieldOrderType, Value: order.Label}}, fields...)
		fields = append(fields, entities.TicketField{Key: FieldOrderPrice, Value: order.Price})
		if users, err := s.describeStatics(ctx, fields); err != nil {
			slog.WarnContext(ctx, "⚠️ Résolution des statiques impossible", tint.Err(err))
		} else if users != "" {
			fields = append(fields, entities.TicketField{Key: FieldStaticUsers, Value: users})
		}
	case entities.TicketPromotion:
		current, next, err := s.ladder.Next(in.Author.RoleIDs)
		if err != nil {
			return nil, err
		}
		fields = append([]entities.TicketField{
			{Key: FieldRankCurrent, Value: strconv.Itoa(current)},
			{Key: FieldRankNext, Value: strconv.Itoa(next)},
		}, fields...)
	}

	t := &entities.Ticket{
		Kind:            in.Kind,
		AuthorID:        in.Author.UserID,
		AuthorName:      in.Author.Name(),
		Fields:          fields,
		ApproveButtonID: entities.ApproveButtonPrefix + s.newID(),
		RejectButtonID:  entities.RejectButtonPrefix + s.newID(),
		CreatedAt:       s.now(),
	}
	channelID, messageID, err := s.desk.Open(ctx, t, in.GuildID)
	if err != nil {
		return nil, fmt.Errorf("open ticket channel: %w", err)
	}
	t.ChannelID, t.MessageID = channelID, messageID

	if err := s.repo.Save(ctx, t); err != nil {
		return nil, fmt.Errorf("save ticket: %w", err)
	}
	if err := s.desk.NotifyAuthor(ctx, t); err != nil {
		// DM fermés : la demande reste valide.
		slog.WarnContext(ctx, "⚠️ Copie de la demande non envoyée", "user_id", t.AuthorID, tint.Err(err))
	}
	return t, nil
}

// describeStatics rend une ligne par statique : "`12345` → <@id>" ou "`12345` → ?".
func (s *TicketService) describeStatics(ctx context.Context, fields []entities.TicketField) (string, error) {
	var text string
	for _, f := range fields {
		if f.Key == FieldStatics {
			text = f.Value
		}
	}
	if text == "" || s.members == nil {
		return "", nil
	}
	matches, err := s.members.ResolveStatics(ctx, text)
	if err != nil {
		return "", err
	}
	lines := make([]string, 0, len(matches))
	for _, m := range matches {
		if m.Member != nil {
			lines = append(lines, fmt.Sprintf("`%s` → <@%s>", m.Static, m.Member.ID))
		} else {
			lines = append(lines, fmt.Sprintf("`%s` → ?", m.Static))
		}
	}
	return strings.Join(lines, "\n"), nil
}

func (s *TicketService) Lookup(ctx context.Context, buttonID string, moderator entities.Actor) (*entities.Ticket, entities.DecisionAction, error) {
	t, err := s.repo.FindByButtonID(ctx, buttonID)
	if err != nil {
		return nil, "", err
	}
	if !s.isModerator(t.Kind, moderator) {
		return nil, "", domain.ErrNotModerator
	}
	action := entities.DecisionApprove
	if buttonID == t.RejectButtonID {
		action = entities.DecisionReject
	}
	return t, action, nil
}

// Decide enregistre la décision, la publie, prévient l'auteur puis ferme le
// salon de la demande. Une demande n'est tranchée qu'une fois : un second clic
// simultané reçoit domain.ErrTicketNotFound.
func (s *TicketService) Decide(ctx context.Context, in input.DecideInput) (*entities.Decision, error) {
	t, action, err := s.Lookup(ctx, in.ButtonID, in.Moderator)
	if err != nil {
		return nil, err
	}
	if !s.claim(t.MessageID) {
		return nil, domain.ErrTicketNotFound
	}
	defer s.release(t.MessageID)
	// La demande a pu être tranchée entre Lookup et claim.
	if _, err := s.repo.FindByButtonID(ctx, in.ButtonID); err != nil {
		return nil, err
	}
	reason := strings.TrimSpace(in.Reason)
	if action == entities.DecisionReject && reason == "" {
		return nil, domain.ErrReasonRequired
	}

	d := &entities.Decision{
		MessageID:   t.MessageID,
		ChannelID:   t.ChannelID,
		Kind:        t.Kind,
		AuthorID:    t.AuthorID,
		ModeratorID: in.Moderator.UserID,
		Action:      action,
		Reason:      reason,
		DecidedAt:   s.now(),
	}
	if err := s.repo.AppendDecision(ctx, d); err != nil {
		return nil, fmt.Errorf("append decision: %w", err)
	}
	if err := s.desk.Announce(ctx, t, d); err != nil {
		slog.WarnContext(ctx, "⚠️ Annonce de la décision incomplète", "message_id", t.MessageID, tint.Err(err))
	}
	if err := s.desk.CloseChannel(ctx, t, d); err != nil {
		slog.ErrorContext(ctx, "❌ Suppression du salon de la demande impossible", "channel_id", t.ChannelID, tint.Err(err))
	}
	if err := s.repo.Delete(ctx, t.MessageID); err != nil {
		return d, fmt.Errorf("delete ticket: %w", err)
	}
	return d, nil
}

func (s *TicketService) claim(messageID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.deciding[messageID]; busy {
		return false
	}
	s.deciding[messageID] = struct{}{}
	return true
}

func (s *TicketService) release(messageID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.deciding, messageID)
}

// isModerator : administrateurs, ou porteurs d'un des rôles notifiés pour ce type.
func (s *TicketService) isModerator(kind entities.TicketKind, actor entities.Actor) bool {
	if actor.IsAdmin {
		return true
	}
	for _, role := range s.moderators[kind] {
		if role != "" && slices.Contains(actor.RoleIDs, role) {
			return true
		}
	}
	return false
}

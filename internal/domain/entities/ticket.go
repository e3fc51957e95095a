package entities

import "time"

// TicketKind est le type de demande traitée dans un salon privé.
type TicketKind string

const (
	TicketReport     TicketKind = "report"
	TicketSuggestion TicketKind = "suggestion"
	TicketOrder      TicketKind = "order"
	TicketPromotion  TicketKind = "promotion"
)

// TicketKinds liste les types connus.
var TicketKinds = []TicketKind{TicketReport, TicketSuggestion, TicketOrder, TicketPromotion}

// Valid indique si k est un type connu.
func (k TicketKind) Valid() bool {
	for _, known := range TicketKinds {
		if k == known {
			return true
		}
	}
	return false
}

// TicketField est un champ affiché dans l'embed de la demande.
type TicketField struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Ticket est une demande ouverte en attente de décision.
type Ticket struct {
	MessageID       string
	ChannelID       string
	Kind            TicketKind
	AuthorID        string
	AuthorName      string
	Fields          []TicketField
	ApproveButtonID string
	RejectButtonID  string
	CreatedAt       time.Time
}

// Field renvoie la valeur du champ key, "" s'il est absent.
func (t *Ticket) Field(key string) string {
	for _, f := range t.Fields {
		if f.Key == key {
			return f.Value
		}
	}
	return ""
}

// DecisionAction est l'issue d'une demande.
type DecisionAction string

const (
	DecisionApprove DecisionAction = "approve"
	DecisionReject  DecisionAction = "reject"
)

// Decision est une ligne du journal de modération.
type Decision struct {
	ID          int64
	MessageID   string
	ChannelID   string
	Kind        TicketKind
	AuthorID    string
	ModeratorID string
	Action      DecisionAction
	Reason      string
	DecidedAt   time.Time
}

// Préfixes des boutons de décision, suivis de 8 caractères hexadécimaux.
const (
	ApproveButtonPrefix = "approve_"
	RejectButtonPrefix  = "reject_"
)

// Clés des champs ajoutés par le service ; les autres viennent du formulaire.
const (
	FieldOrderType   = "order_type"
	FieldOrderPrice  = "order_price"
	FieldStatics     = "statics"
	FieldStaticUsers = "static_users"
	FieldRankCurrent = "rank_current"
	FieldRankNext    = "rank_next"
)

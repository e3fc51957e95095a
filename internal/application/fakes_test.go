package application

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"musterbot/internal/domain"
	"musterbot/internal/domain/entities"
	"musterbot/internal/ports/output"
)

type fakeMusterRepo struct {
	mu      sync.Mutex
	musters map[string]*entities.Muster
	saves   int
	saveErr error
}

func newFakeMusterRepo() *fakeMusterRepo {
	return &fakeMusterRepo{musters: map[string]*entities.Muster{}}
}

func (r *fakeMusterRepo) Save(_ context.Context, m *entities.Muster) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saves++
	r.musters[m.ID] = m.Clone()
	return nil
}

func (r *fakeMusterRepo) FindByID(_ context.Context, id string) (*entities.Muster, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.musters[id]
	if !ok {
		return nil, domain.ErrMusterNotFound
	}
	return m.Clone(), nil
}

func (r *fakeMusterRepo) List(_ context.Context) ([]entities.Muster, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entities.Muster, 0, len(r.musters))
	for _, m := range r.musters {
		out = append(out, *m.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeMusterRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.musters, id)
	return nil
}

func (r *fakeMusterRepo) DeleteCreatedBefore(_ context.Context, t time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, m := range r.musters {
		if m.CreatedAt.Before(t) {
			delete(r.musters, id)
			n++
		}
	}
	return n, nil
}

type fakeBoard struct {
	nextID     int
	archived   map[string]output.ArchiveReason
	archiveErr map[string]error
	checkErr   map[string]error
	publishErr error
}

func newFakeBoard() *fakeBoard {
	return &fakeBoard{
		archived:   map[string]output.ArchiveReason{},
		archiveErr: map[string]error{},
		checkErr:   map[string]error{},
	}
}

func (b *fakeBoard) Check(_ context.Context, m *entities.Muster) error {
	return b.checkErr[m.ID]
}

func (b *fakeBoard) Publish(_ context.Context, _ *entities.Muster) (string, string, error) {
	if b.publishErr != nil {
		return "", "", b.publishErr
	}
	b.nextID++
	id := fmt.Sprintf("msg-%d", b.nextID)
	return id, "thread-" + id, nil
}

func (b *fakeBoard) Archive(_ context.Context, m *entities.Muster, reason output.ArchiveReason) error {
	if err := b.archiveErr[m.ID]; err != nil {
		return err
	}
	b.archived[m.ID] = reason
	return nil
}

type fakeDirectory map[string][]string

func (d fakeDirectory) Roles(_ context.Context, _, userID string) ([]string, error) {
	roles, ok := d[userID]
	if !ok {
		return nil, fmt.Errorf("member %s not found", userID)
	}
	return roles, nil
}

type fakeTicketRepo struct {
	mu        sync.Mutex
	tickets   map[string]*entities.Ticket
	decisions []entities.Decision
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: map[string]*entities.Ticket{}}
}

func (r *fakeTicketRepo) Save(_ context.Context, t *entities.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *t
	r.tickets[t.MessageID] = &c
	return nil
}

func (r *fakeTicketRepo) FindByButtonID(_ context.Context, buttonID string) (*entities.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tickets {
		if t.ApproveButtonID == buttonID || t.RejectButtonID == buttonID {
			c := *t
			return &c, nil
		}
	}
	return nil, domain.ErrTicketNotFound
}

func (r *fakeTicketRepo) Delete(_ context.Context, messageID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tickets, messageID)
	return nil
}

func (r *fakeTicketRepo) AppendDecision(_ context.Context, d *entities.Decision) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d.ID = int64(len(r.decisions) + 1)
	r.decisions = append(r.decisions, *d)
	return nil
}

func (r *fakeTicketRepo) ListDecisions(_ context.Context, messageID string) ([]entities.Decision, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entities.Decision
	for _, d := range r.decisions {
		if d.MessageID == messageID {
			out = append(out, d)
		}
	}
	return out, nil
}

type fakeDesk struct {
	mu        sync.Mutex
	opened    []*entities.Ticket
	notified  int
	announced []*entities.Decision
	closed    []string
	notifyErr error
}

func (d *fakeDesk) Open(_ context.Context, t *entities.Ticket, _ string) (string, string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.opened = append(d.opened, t)
	n := len(d.opened)
	return fmt.Sprintf("chan-%d", n), fmt.Sprintf("ticket-%d", n), nil
}

func (d *fakeDesk) NotifyAuthor(_ context.Context, _ *entities.Ticket) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.notified++
	return d.notifyErr
}

func (d *fakeDesk) Announce(_ context.Context, _ *entities.Ticket, dec *entities.Decision) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.announced = append(d.announced, dec)
	return nil
}

func (d *fakeDesk) CloseChannel(_ context.Context, t *entities.Ticket, _ *entities.Decision) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = append(d.closed, t.ChannelID)
	return nil
}

type fakeMemberRepo struct {
	members map[string]entities.Member
	upserts int
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{members: map[string]entities.Member{}}
}

func (r *fakeMemberRepo) Upsert(_ context.Context, m *entities.Member) (bool, error) {
	_, exists := r.members[m.ID]
	r.members[m.ID] = *m
	r.upserts++
	return !exists, nil
}

func (r *fakeMemberRepo) Delete(_ context.Context, id string) (bool, error) {
	_, ok := r.members[id]
	delete(r.members, id)
	return ok, nil
}

func (r *fakeMemberRepo) FindByID(_ context.Context, id string) (*entities.Member, error) {
	m, ok := r.members[id]
	if !ok {
		return nil, domain.ErrMemberNotFound
	}
	return &m, nil
}

func (r *fakeMemberRepo) FindByStatic(_ context.Context, static string) (*entities.Member, error) {
	for _, m := range r.members {
		if m.GameStatic == static {
			c := m
			return &c, nil
		}
	}
	return nil, domain.ErrMemberNotFound
}

func (r *fakeMemberRepo) List(_ context.Context) ([]entities.Member, error) {
	out := make([]entities.Member, 0, len(r.members))
	for _, m := range r.members {
		out = append(out, m)
	}
	return out, nil
}

type fakePingRepo struct {
	messages []entities.PingMessage
}

func (r *fakePingRepo) SaveMessages(_ context.Context, msgs []entities.PingMessage) error {
	r.messages = append(r.messages, msgs...)
	return nil
}

func (r *fakePingRepo) Due(_ context.Context, now time.Time) ([]entities.PingMessage, error) {
	var out []entities.PingMessage
	for _, m := range r.messages {
		if !m.DeleteAt.After(now) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakePingRepo) DeleteMessage(_ context.Context, messageID string) error {
	for i, m := range r.messages {
		if m.MessageID == messageID {
			r.messages = append(r.messages[:i], r.messages[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakePingBoard struct {
	sent      int
	failAfter int
	deleted   []string
	deleteErr map[string]error
	logged    int
}

func (b *fakePingBoard) Send(_ context.Context, _ *entities.PingGroup) (string, error) {
	if b.failAfter > 0 && b.sent >= b.failAfter {
		return "", fmt.Errorf("missing permissions")
	}
	b.sent++
	return fmt.Sprintf("ping-%d", b.sent), nil
}

func (b *fakePingBoard) Delete(_ context.Context, _, messageID string) error {
	if err := b.deleteErr[messageID]; err != nil {
		return err
	}
	b.deleted = append(b.deleted, messageID)
	return nil
}

func (b *fakePingBoard) Log(_ context.Context, _ *entities.PingGroup) error {
	b.logged++
	return nil
}

type fakeAfkLog struct {
	posted []*entities.AfkNotice
}

func (l *fakeAfkLog) Post(_ context.Context, n *entities.AfkNotice) error {
	l.posted = append(l.posted, n)
	return nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// Package roster gère les deux listes d'un rassemblement : la liste principale,
// plafonnée et triée par rang, et la liste de réserve, dans l'ordre d'arrivée.
package roster

import (
	"slices"

	"musterbot/internal/domain"
)

// Entry est une inscription dans l'une des deux listes.
type Entry struct {
	UserID      string
	DisplayName string
}

// Outcome résume l'effet d'une opération sur le roster.
type Outcome int

const (
	Added Outcome = iota
	Promoted
	Swapped
	AlreadyPresent
	NotFound
	Removed
)

func (o Outcome) String() string {
	switch o {
	case Added:
		return "added"
	case Promoted:
		return "promoted"
	case Swapped:
		return "swapped"
	case AlreadyPresent:
		return "already_present"
	case NotFound:
		return "not_found"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

// List désigne la liste dans laquelle se trouve l'appelant après l'opération.
type List int

const (
	None List = iota
	Primary
	Overflow
)

func (l List) String() string {
	switch l {
	case Primary:
		return "primary"
	case Overflow:
		return "overflow"
	default:
		return "none"
	}
}

// Result décrit le résultat d'un Join, JoinOverflow ou Leave.
type Result struct {
	Outcome Outcome
	List    List
	// From est la liste quittée par un Leave.
	From List
	// Moved est vrai quand l'appelant a changé de liste.
	Moved bool
	// Evicted est le membre renvoyé en réserve lors d'un Swapped.
	Evicted *Entry
	// Promoted est le membre remonté de la réserve vers la liste principale.
	Promoted *Entry
}

// Roster contient les deux listes et la capacité de la liste principale.
// Le rang est résolu à la demande via rank, jamais stocké.
type Roster struct {
	Capacity int
	Primary  []Entry
	Overflow []Entry

	rank  domain.RankFunc
	ranks map[string]domain.Rank
}

// New construit un Roster à partir de listes existantes (copiées).
// Un rank nil place tout le monde au même rang.
func New(capacity int, primary, overflow []Entry, rank domain.RankFunc) *Roster {
	if rank == nil {
		rank = func(string) domain.Rank { return domain.RankNone }
	}
	return &Roster{
		Capacity: capacity,
		Primary:  slices.Clone(primary),
		Overflow: slices.Clone(overflow),
		rank:     rank,
	}
}

// Join inscrit e dans la liste principale si possible : place libre, ou
// éviction du membre de plus bas rang quand e le surclasse strictement.
// Sinon e rejoint la réserve.
func (r *Roster) Join(e Entry) Result {
	r.ranks = map[string]domain.Rank{}

	if indexOf(r.Primary, e.UserID) >= 0 {
		return Result{Outcome: AlreadyPresent, List: Primary}
	}

	pos := indexOf(r.Overflow, e.UserID)
	moved := pos >= 0
	if moved {
		r.Overflow = slices.Delete(r.Overflow, pos, pos+1)
	}

	if len(r.Primary) < r.Capacity {
		r.Primary = append(r.Primary, e)
		r.sortPrimary()
		return Result{Outcome: Added, List: Primary, Moved: moved}
	}

	if idx := r.lowest(); idx >= 0 && r.rankOf(e.UserID).Outranks(r.rankOf(r.Primary[idx].UserID)) {
		evicted := r.Primary[idx]
		r.Primary = slices.Delete(r.Primary, idx, idx+1)
		r.Overflow = append(r.Overflow, evicted)
		r.Primary = append(r.Primary, e)
		r.sortPrimary()
		return Result{Outcome: Swapped, List: Primary, Moved: moved, Evicted: &evicted}
	}

	if moved {
		// Pas de place : on remet l'appelant à sa position d'origine.
		r.Overflow = slices.Insert(r.Overflow, pos, e)
		return Result{Outcome: AlreadyPresent, List: Overflow}
	}
	r.Overflow = append(r.Overflow, e)
	return Result{Outcome: Added, List: Overflow}
}

// JoinOverflow place e en réserve. S'il quitte la liste principale, la place
// libérée revient au meilleur rang de la réserve (hors e).
func (r *Roster) JoinOverflow(e Entry) Result {
	r.ranks = map[string]domain.Rank{}

	if indexOf(r.Overflow, e.UserID) >= 0 {
		return Result{Outcome: AlreadyPresent, List: Overflow}
	}

	idx := indexOf(r.Primary, e.UserID)
	if idx < 0 {
		r.Overflow = append(r.Overflow, e)
		return Result{Outcome: Added, List: Overflow}
	}

	r.Primary = slices.Delete(r.Primary, idx, idx+1)
	r.Overflow = append(r.Overflow, e)
	res := Result{Outcome: Added, List: Overflow, Moved: true}

	if len(r.Primary) < r.Capacity && len(r.Overflow) > 1 {
		if promoted, ok := r.promote(e.UserID); ok {
			res.Outcome = Promoted
			res.Promoted = &promoted
		}
	}
	return res
}

// Leave retire userID de la liste où il se trouve. Un départ de la liste
// principale fait remonter le meilleur rang de la réserve.
func (r *Roster) Leave(userID string) Result {
	r.ranks = map[string]domain.Rank{}

	if idx := indexOf(r.Primary, userID); idx >= 0 {
		r.Primary = slices.Delete(r.Primary, idx, idx+1)
		if promoted, ok := r.promote(""); ok {
			return Result{Outcome: Promoted, List: None, From: Primary, Promoted: &promoted}
		}
		return Result{Outcome: Removed, List: None, From: Primary}
	}

	if idx := indexOf(r.Overflow, userID); idx >= 0 {
		r.Overflow = slices.Delete(r.Overflow, idx, idx+1)
		return Result{Outcome: Removed, List: None, From: Overflow}
	}

	return Result{Outcome: NotFound, List: None}
}

// Contains indique dans quelle liste se trouve userID.
func (r *Roster) Contains(userID string) List {
	switch {
	case indexOf(r.Primary, userID) >= 0:
		return Primary
	case indexOf(r.Overflow, userID) >= 0:
		return Overflow
	default:
		return None
	}
}

// promote déplace le meilleur rang de la réserve (premier en cas d'égalité)
// vers la liste principale, en ignorant exclude.
func (r *Roster) promote(exclude string) (Entry, bool) {
	best := -1
	for i, e := range r.Overflow {
		if e.UserID == exclude {
			continue
		}
		if best < 0 || r.rankOf(e.UserID).Outranks(r.rankOf(r.Overflow[best].UserID)) {
			best = i
		}
	}
	if best < 0 {
		return Entry{}, false
	}
	promoted := r.Overflow[best]
	r.Overflow = slices.Delete(r.Overflow, best, best+1)
	r.Primary = append(r.Primary, promoted)
	r.sortPrimary()
	return promoted, true
}

// lowest renvoie l'index du membre de plus bas rang de la liste principale,
// le premier dans l'ordre de la liste en cas d'égalité.
func (r *Roster) lowest() int {
	idx := -1
	for i, e := range r.Primary {
		if idx < 0 || r.rankOf(r.Primary[idx].UserID).Outranks(r.rankOf(e.UserID)) {
			idx = i
		}
	}
	return idx
}

func (r *Roster) sortPrimary() {
	slices.SortStableFunc(r.Primary, func(a, b Entry) int {
		return int(r.rankOf(a.UserID)) - int(r.rankOf(b.UserID))
	})
}

func (r *Roster) rankOf(userID string) domain.Rank {
	if r.ranks == nil {
		r.ranks = map[string]domain.Rank{}
	}
	if rank, ok := r.ranks[userID]; ok {
		return rank
	}
	rank := r.rank(userID)
	r.ranks[userID] = rank
	return rank
}

func indexOf(entries []Entry, userID string) int {
	return slices.IndexFunc(entries, func(e Entry) bool { return e.UserID == userID })
}

package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"musterbot/internal/domain"
)

func ranks(m map[string]domain.Rank) domain.RankFunc {
	return func(userID string) domain.Rank {
		if r, ok := m[userID]; ok {
			return r
		}
		return domain.RankNone
	}
}

func ids(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.UserID
	}
	return out
}

func entry(id string) Entry { return Entry{UserID: id, DisplayName: "user-" + id} }

func TestJoin_AddsWhileRoomAndSortsByRank(t *testing.T) {
	r := New(3, nil, nil, ranks(map[string]domain.Rank{
		"a": domain.RankTier3,
		"b": domain.RankLead,
		"c": domain.RankTier3,
	}))

	assert.Equal(t, Result{Outcome: Added, List: Primary}, r.Join(entry("a")))
	assert.Equal(t, Result{Outcome: Added, List: Primary}, r.Join(entry("b")))
	assert.Equal(t, Result{Outcome: Added, List: Primary}, r.Join(entry("c")))

	assert.Equal(t, []string{"b", "a", "c"}, ids(r.Primary))
	assert.Empty(t, r.Overflow)
}

func TestJoin_AlreadyInPrimary(t *testing.T) {
	r := New(2, []Entry{entry("a")}, nil, nil)

	res := r.Join(entry("a"))

	assert.Equal(t, AlreadyPresent, res.Outcome)
	assert.Equal(t, Primary, res.List)
	assert.Equal(t, []string{"a"}, ids(r.Primary))
}

func TestJoin_FullGoesToOverflowWithoutBetterRank(t *testing.T) {
	r := New(1, []Entry{entry("a")}, nil, ranks(map[string]domain.Rank{
		"a": domain.RankTier2,
		"b": domain.RankTier2,
	}))

	res := r.Join(entry("b"))

	assert.Equal(t, Added, res.Outcome)
	assert.Equal(t, Overflow, res.List)
	assert.Equal(t, []string{"a"}, ids(r.Primary))
	assert.Equal(t, []string{"b"}, ids(r.Overflow))
}

func TestJoin_SwapsLowestRank(t *testing.T) {
	r := New(2, []Entry{entry("lead"), entry("low")}, []Entry{entry("x")}, ranks(map[string]domain.Rank{
		"lead":   domain.RankLead,
		"low":    domain.RankTier3,
		"caller": domain.RankCaller,
	}))

	res := r.Join(entry("caller"))

	require.Equal(t, Swapped, res.Outcome)
	assert.Equal(t, Primary, res.List)
	require.NotNil(t, res.Evicted)
	assert.Equal(t, "low", res.Evicted.UserID)
	assert.Equal(t, []string{"lead", "caller"}, ids(r.Primary))
	assert.Equal(t, []string{"x", "low"}, ids(r.Overflow))
}

func TestJoin_SwapEvictsFirstAmongTiedLowest(t *testing.T) {
	r := New(3, []Entry{entry("a"), entry("b"), entry("c")}, nil, ranks(map[string]domain.Rank{
		"a":   domain.RankCaller,
		"b":   domain.RankTier3,
		"c":   domain.RankTier3,
		"new": domain.RankTier1,
	}))

	res := r.Join(entry("new"))

	require.Equal(t, Swapped, res.Outcome)
	assert.Equal(t, "b", res.Evicted.UserID)
	assert.Equal(t, []string{"a", "new", "c"}, ids(r.Primary))
	assert.Equal(t, []string{"b"}, ids(r.Overflow))
}

func TestJoin_FromOverflowIntoFreeSlot(t *testing.T) {
	r := New(2, []Entry{entry("a")}, []Entry{entry("b"), entry("c")}, nil)

	res := r.Join(entry("c"))

	assert.Equal(t, Result{Outcome: Added, List: Primary, Moved: true}, res)
	assert.Equal(t, []string{"a", "c"}, ids(r.Primary))
	assert.Equal(t, []string{"b"}, ids(r.Overflow))
}

func TestJoin_FromOverflowKeepsPositionWhenStillFull(t *testing.T) {
	r := New(1, []Entry{entry("a")}, []Entry{entry("b"), entry("c"), entry("d")}, nil)

	res := r.Join(entry("c"))

	assert.Equal(t, AlreadyPresent, res.Outcome)
	assert.Equal(t, Overflow, res.List)
	assert.False(t, res.Moved)
	assert.Equal(t, []string{"b", "c", "d"}, ids(r.Overflow))
}

func TestJoin_ZeroCapacityGoesToOverflow(t *testing.T) {
	r := New(0, nil, nil, nil)

	res := r.Join(entry("a"))

	assert.Equal(t, Overflow, res.List)
	assert.Empty(t, r.Primary)
}

func TestJoinOverflow(t *testing.T) {
	rank := ranks(map[string]domain.Rank{
		"a": domain.RankTier1,
		"b": domain.RankTier3,
		"c": domain.RankCaller,
		"d": domain.RankTier3,
	})

	t.Run("already in overflow", func(t *testing.T) {
		r := New(1, nil, []Entry{entry("a")}, rank)
		res := r.JoinOverflow(entry("a"))
		assert.Equal(t, Result{Outcome: AlreadyPresent, List: Overflow}, res)
	})

	t.Run("new user", func(t *testing.T) {
		r := New(1, nil, nil, rank)
		res := r.JoinOverflow(entry("a"))
		assert.Equal(t, Result{Outcome: Added, List: Overflow}, res)
		assert.Empty(t, r.Primary)
		assert.Equal(t, []string{"a"}, ids(r.Overflow))
	})

	t.Run("moves from primary and promotes best other", func(t *testing.T) {
		r := New(2, []Entry{entry("a"), entry("b")}, []Entry{entry("d"), entry("c")}, rank)

		res := r.JoinOverflow(entry("a"))

		require.Equal(t, Promoted, res.Outcome)
		assert.True(t, res.Moved)
		assert.Equal(t, Overflow, res.List)
		assert.Equal(t, "c", res.Promoted.UserID)
		assert.Equal(t, []string{"c", "b"}, ids(r.Primary))
		assert.Equal(t, []string{"d", "a"}, ids(r.Overflow))
	})

	t.Run("moves from primary with empty overflow", func(t *testing.T) {
		r := New(2, []Entry{entry("a"), entry("b")}, nil, rank)

		res := r.JoinOverflow(entry("a"))

		assert.Equal(t, Result{Outcome: Added, List: Overflow, Moved: true}, res)
		assert.Equal(t, []string{"b"}, ids(r.Primary))
		assert.Equal(t, []string{"a"}, ids(r.Overflow))
	})
}

func TestLeave(t *testing.T) {
	rank := ranks(map[string]domain.Rank{
		"a": domain.RankLead,
		"b": domain.RankTier2,
		"c": domain.RankTier3,
		"d": domain.RankTier1,
		"e": domain.RankTier1,
	})

	t.Run("primary promotes best overflow, first among ties", func(t *testing.T) {
		r := New(2, []Entry{entry("a"), entry("b")}, []Entry{entry("c"), entry("d"), entry("e")}, rank)

		res := r.Leave("a")

		require.Equal(t, Promoted, res.Outcome)
		assert.Equal(t, Primary, res.From)
		assert.Equal(t, "d", res.Promoted.UserID)
		assert.Equal(t, []string{"d", "b"}, ids(r.Primary))
		assert.Equal(t, []string{"c", "e"}, ids(r.Overflow))
	})

	t.Run("primary without overflow", func(t *testing.T) {
		r := New(2, []Entry{entry("a"), entry("b")}, nil, rank)
		assert.Equal(t, Result{Outcome: Removed, List: None, From: Primary}, r.Leave("b"))
		assert.Equal(t, []string{"a"}, ids(r.Primary))
	})

	t.Run("overflow", func(t *testing.T) {
		r := New(1, []Entry{entry("a")}, []Entry{entry("b"), entry("c")}, rank)
		assert.Equal(t, Result{Outcome: Removed, List: None, From: Overflow}, r.Leave("b"))
		assert.Equal(t, []string{"c"}, ids(r.Overflow))
		assert.Equal(t, []string{"a"}, ids(r.Primary))
	})

	t.Run("unknown", func(t *testing.T) {
		r := New(1, []Entry{entry("a")}, nil, rank)
		assert.Equal(t, NotFound, r.Leave("zzz").Outcome)
	})
}

func TestNew_CopiesInputSlices(t *testing.T) {
	primary := []Entry{entry("a"), entry("b")}
	r := New(2, primary, nil, nil)

	r.Leave("a")

	assert.Equal(t, []string{"a", "b"}, ids(primary))
}

func TestRank_ResolvedOncePerOperation(t *testing.T) {
	calls := map[string]int{}
	r := New(2, []Entry{entry("a"), entry("b")}, nil, func(userID string) domain.Rank {
		calls[userID]++
		return domain.RankTier3
	})

	r.Join(entry("c"))

	for id, n := range calls {
		assert.Equalf(t, 1, n, "rank of %s resolved %d times", id, n)
	}
}

func TestInvariant_UniqueAndCapped(t *testing.T) {
	rank := ranks(map[string]domain.Rank{"1": domain.RankLead, "3": domain.RankCaller, "5": domain.RankTier1})
	r := New(2, nil, nil, rank)

	ops := []func(){
		func() { r.Join(entry("1")) },
		func() { r.Join(entry("2")) },
		func() { r.Join(entry("3")) },
		func() { r.JoinOverflow(entry("1")) },
		func() { r.Join(entry("4")) },
		func() { r.Join(entry("5")) },
		func() { r.Leave("3") },
		func() { r.Join(entry("1")) },
		func() { r.JoinOverflow(entry("5")) },
		func() { r.Leave("2") },
	}
	for _, op := range ops {
		op()
		assert.LessOrEqual(t, len(r.Primary), r.Capacity)
		seen := map[string]bool{}
		for _, id := range append(ids(r.Primary), ids(r.Overflow)...) {
			assert.False(t, seen[id], "duplicate %s", id)
			seen[id] = true
		}
	}
}

package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testHierarchy() Hierarchy {
	return Hierarchy{
		LeadRole:    "100",
		CallerRole:  "200",
		Tier1Role:   "301",
		Tier2Role:   "302",
		Tier3Role:   "303",
		ManageRoles: []string{"900", "901"},
	}
}

func TestHierarchy_Resolve(t *testing.T) {
	h := testHierarchy()

	tests := []struct {
		name  string
		roles []string
		want  Rank
	}{
		{"no roles", nil, RankNone},
		{"unrelated roles", []string{"1", "2"}, RankNone},
		{"tier3", []string{"303"}, RankTier3},
		{"best of several", []string{"303", "200", "301"}, RankCaller},
		{"lead", []string{"100"}, RankLead},
		{"whitespace tolerated", []string{" 302 "}, RankTier2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, h.Resolve(tt.roles))
		})
	}
}

func TestHierarchy_ResolveIgnoresUnboundRoles(t *testing.T) {
	h := Hierarchy{Tier2Role: "302"}

	assert.Equal(t, RankNone, h.Resolve([]string{""}))
	assert.Equal(t, RankTier2, h.Resolve([]string{"", "302"}))
}

func TestHierarchy_CanManage(t *testing.T) {
	h := testHierarchy()

	assert.True(t, h.CanManage(nil, true))
	assert.True(t, h.CanManage([]string{"901"}, false))
	assert.False(t, h.CanManage([]string{"100"}, false))
	assert.False(t, Hierarchy{}.CanManage([]string{""}, false))
}

func TestRank_Outranks(t *testing.T) {
	assert.True(t, RankLead.Outranks(RankCaller))
	assert.False(t, RankTier2.Outranks(RankTier2))
	assert.False(t, RankNone.Outranks(RankTier3))
	assert.Equal(t, "caller", RankCaller.String())
	assert.Equal(t, "none", Rank(42).String())
}

func TestCode(t *testing.T) {
	assert.Equal(t, "", Code(nil))
	assert.Equal(t, "", Code(errors.New("boom")))
	assert.Equal(t, "muster_not_found", Code(ErrMusterNotFound))
	assert.Equal(t, "not_manager", Code(fmt.Errorf("close muster: %w", ErrNotManager)))
}

package discord

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"musterbot/internal/domain/entities"
)

func TestMusterButtonID(t *testing.T) {
	for _, action := range []MusterAction{MusterJoin, MusterExtra, MusterLeave, MusterClose} {
		a, id, ok := ParseMusterButton(MusterButtonID(action, "1234567890"))
		assert.True(t, ok)
		assert.Equal(t, action, a)
		assert.Equal(t, "1234567890", id)
	}

	for _, bad := range []string{"join_", "approve_0a1b2c3d", "group_drop", "joined"} {
		_, _, ok := ParseMusterButton(bad)
		assert.Falsef(t, ok, "%q", bad)
	}
}

func TestGroupIDs(t *testing.T) {
	kind, ok := ParseGroupButton(GroupButtonID(entities.PingDealers))
	assert.True(t, ok)
	assert.Equal(t, entities.PingDealers, kind)

	_, ok = ParseGroupButton(GroupModalID(entities.PingDealers))
	assert.False(t, ok)

	kind, ok = ParseGroupModal(GroupModalID(entities.PingCustom))
	assert.True(t, ok)
	assert.Equal(t, entities.PingCustom, kind)

	_, ok = ParseGroupButton("group_party")
	assert.False(t, ok)
}

func TestOrderAndRejectModals(t *testing.T) {
	v, ok := ParseOrderModal(OrderModalID("grover_1"))
	assert.True(t, ok)
	assert.Equal(t, "grover_1", v)

	b, ok := ParseRejectModal(RejectModalID("reject_0a1b2c3d"))
	assert.True(t, ok)
	assert.Equal(t, "reject_0a1b2c3d", b)

	_, ok = ParseRejectModal("reject_modal_")
	assert.False(t, ok)
}

func TestIsDecisionButton(t *testing.T) {
	assert.True(t, IsDecisionButton("approve_0a1b2c3d"))
	assert.True(t, IsDecisionButton("reject_deadbeef"))
	assert.False(t, IsDecisionButton("reject_modal_reject_deadbeef"))
	assert.False(t, IsDecisionButton("approve_XYZ12345"))
	assert.False(t, IsDecisionButton("approve_123"))
}

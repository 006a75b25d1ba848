package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecisions(t *testing.T) {
	t.Run("Unknown suggestions are pending", func(t *testing.T) {
		d := NewDecisions()

		assert.Equal(t, DecisionPending, d.NodeStatus("P_TU_fractions"))
		assert.Equal(t, DecisionPending, d.EdgeStatus("a\x00b"))
	})

	t.Run("Accepting a node clears a previous exclusion", func(t *testing.T) {
		d := NewDecisions()
		d.ExcludeNode("P_TU_fractions")
		assert.Equal(t, DecisionExcluded, d.NodeStatus("P_TU_fractions"))

		d.AcceptNode("P_TU_fractions")

		assert.Equal(t, DecisionAccepted, d.NodeStatus("P_TU_fractions"))
		assert.False(t, d.Excluded.NodeIDs["P_TU_fractions"], "Expected exclusion to be cleared")
	})

	t.Run("Excluding an edge clears a previous acceptance", func(t *testing.T) {
		d := NewDecisions()
		d.AcceptEdge("a\x00b")

		d.ExcludeEdge("a\x00b")

		assert.Equal(t, DecisionExcluded, d.EdgeStatus("a\x00b"))
		assert.False(t, d.Accepted.EdgeKeys["a\x00b"], "Expected acceptance to be cleared")
	})

	t.Run("Node and edge decisions are independent", func(t *testing.T) {
		d := NewDecisions()
		d.AcceptNode("x")

		assert.Equal(t, DecisionAccepted, d.NodeStatus("x"))
		assert.Equal(t, DecisionPending, d.EdgeStatus("x"))
	})
}

package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyRosterBatch_AllSucceed(t *testing.T) {
	changes := []RosterChange{
		{StudentID: "a"},
		{StudentID: "b"},
	}

	result := ApplyRosterBatch(changes, func(RosterChange) error { return nil })
	assert.Equal(t, 2, result.Succeeded)
	assert.Equal(t, 0, result.Failed)
	require.Len(t, result.Items, 2)
	assert.True(t, result.Items[0].OK)
	assert.True(t, result.Items[1].OK)
}

func TestApplyRosterBatch_PartialFailure(t *testing.T) {
	changes := []RosterChange{
		{StudentID: "a"},
		{StudentID: "missing"},
		{StudentID: "c"},
	}

	result := ApplyRosterBatch(changes, func(change RosterChange) error {
		if change.StudentID == "missing" {
			return ErrNotFound("User not found")
		}
		return nil
	})

	assert.Equal(t, 2, result.Succeeded)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Items, 3)
	// order follows the input so callers can line results up with rows
	assert.Equal(t, "a", result.Items[0].StudentID)
	assert.True(t, result.Items[0].OK)
	assert.Equal(t, "missing", result.Items[1].StudentID)
	assert.False(t, result.Items[1].OK)
	assert.Equal(t, "User not found", result.Items[1].Error)
	assert.True(t, result.Items[2].OK)
}

func TestApplyRosterBatch_Empty(t *testing.T) {
	result := ApplyRosterBatch(nil, func(RosterChange) error { return nil })
	assert.Equal(t, 0, result.Succeeded)
	assert.Equal(t, 0, result.Failed)
	assert.Empty(t, result.Items)
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidCategory(t *testing.T) {
	for _, category := range Categories {
		assert.True(t, IsValidCategory(category), category)
	}
	assert.False(t, IsValidCategory("Spaceships"))
	assert.False(t, IsValidCategory(""))
	assert.False(t, IsValidCategory("electronics"), "category matching is case-sensitive")
}

func TestResolveStatusLabel(t *testing.T) {
	tests := []struct {
		label      string
		status     string
		isVerified *bool
		ok         bool
	}{
		{label: "found", status: FoundStatusFound, ok: true},
		{label: "claimed", status: FoundStatusClaimed, ok: true},
		{label: "verified", status: FoundStatusFound, isVerified: boolPtr(true), ok: true},
		{label: "rejected", status: FoundStatusRejected, isVerified: boolPtr(false), ok: true},
		{label: "pending", ok: false},
		{label: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			update, ok := ResolveStatusLabel(tt.label)
			require.Equal(t, tt.ok, ok)
			if !tt.ok {
				return
			}
			assert.Equal(t, tt.status, update.Status)
			if tt.isVerified == nil {
				assert.Nil(t, update.IsVerified)
			} else {
				require.NotNil(t, update.IsVerified)
				assert.Equal(t, *tt.isVerified, *update.IsVerified)
			}
		})
	}
}

func TestClaimTerminal(t *testing.T) {
	claim := &ClaimRequest{Status: ClaimStatusPending}
	assert.False(t, claim.Terminal())

	for _, status := range []string{ClaimStatusApproved, ClaimStatusRejected, ClaimStatusCanceled} {
		claim.Status = status
		assert.True(t, claim.Terminal(), status)
	}
}

func TestVerificationStepTypesMatchRecordFields(t *testing.T) {
	// Every accepted stepType must map onto a bson sub-field of
	// VerificationRecord.
	expected := map[string]bool{
		"photo":           true,
		"location":        true,
		"description":     true,
		"category":        true,
		"ownership_proof": true,
	}
	for stepType, field := range VerificationStepTypes {
		assert.True(t, expected[field], "stepType %s maps to unknown field %s", stepType, field)
	}
	assert.Len(t, VerificationStepTypes, len(expected))
}

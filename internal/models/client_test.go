package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitcrm/fitcrm/internal/models"
)

func TestNewRecord(t *testing.T) {
	fields := models.ClientFields{
		FullName:  "Jane Doe",
		Age:       "29",
		Gender:    "female",
		Email:     "jane@x.com",
		Phone:     "5551234",
		Goal:      "Lose weight",
		StartDate: "2024-01-01",
	}

	rec := models.NewRecord("abc123", fields)

	assert.Equal(t, "abc123", rec.ID)
	assert.Equal(t, "Jane Doe", rec.FullName)
	assert.Equal(t, "jane@x.com", rec.Email)
	require.NotNil(t, rec.History)
	assert.Empty(t, rec.History)
}

func TestClone(t *testing.T) {
	rec := &models.ClientRecord{
		ID:       "1",
		FullName: "Ann Lee",
		History:  []string{"session 1", "session 2"},
	}

	cp := rec.Clone()
	cp.FullName = "Changed"
	cp.History[0] = "changed"

	assert.Equal(t, "Ann Lee", rec.FullName)
	assert.Equal(t, "session 1", rec.History[0])
}

func TestUpdateApplyPartial(t *testing.T) {
	rec := &models.ClientRecord{
		ID:        "1",
		FullName:  "Ann Lee",
		Age:       "30",
		Gender:    "female",
		Email:     "ann@x.com",
		Phone:     "5551234",
		Goal:      "Run a marathon",
		StartDate: "2024-01-01",
		History:   []string{"week 1"},
	}

	name := "X"
	models.ClientUpdate{FullName: &name}.Apply(rec)

	assert.Equal(t, "X", rec.FullName)
	assert.Equal(t, "1", rec.ID)
	assert.Equal(t, "30", rec.Age)
	assert.Equal(t, "ann@x.com", rec.Email)
	assert.Equal(t, "5551234", rec.Phone)
	assert.Equal(t, "Run a marathon", rec.Goal)
	assert.Equal(t, "2024-01-01", rec.StartDate)
	assert.Equal(t, []string{"week 1"}, rec.History)
}

func TestUpdateFromSkipsAgeAndGender(t *testing.T) {
	update := models.UpdateFrom(models.ClientFields{
		FullName:  "New Name",
		Age:       "99",
		Gender:    "other",
		Email:     "new@x.com",
		Phone:     "5559999",
		Goal:      "Bulk",
		StartDate: "2024-06-01",
	})

	rec := &models.ClientRecord{Age: "30", Gender: "female"}
	update.Apply(rec)

	assert.Equal(t, "New Name", rec.FullName)
	assert.Equal(t, "30", rec.Age)
	assert.Equal(t, "female", rec.Gender)
}

func TestValidationErrorMessage(t *testing.T) {
	err := &models.ValidationError{Fields: map[string]string{
		"phone": "Enter a valid phone",
		"email": "Enter a valid email",
	}}

	assert.Equal(t, "validation failed: email, phone", err.Error())
}

func TestEnrichmentErrorUnwrap(t *testing.T) {
	inner := assert.AnError
	err := &models.EnrichmentError{Reason: "timeout", Err: inner}

	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "timeout")
}

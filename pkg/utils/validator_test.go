package utils

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stagePayload struct {
	Stage string `validate:"maintenance_stage"`
}

type typePayload struct {
	MaintenanceType string `validate:"maintenance_type"`
}

func newTestValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	require.NoError(t, RegisterCustomValidations(v))
	return v
}

func TestMaintenanceStageValidation(t *testing.T) {
	v := newTestValidator(t)

	for _, stage := range []string{"new", "in_progress", "repaired", "scrap"} {
		assert.NoError(t, v.Struct(stagePayload{Stage: stage}), stage)
	}
	assert.Error(t, v.Struct(stagePayload{Stage: "done"}))
	assert.Error(t, v.Struct(stagePayload{Stage: ""}))
}

func TestMaintenanceTypeValidation(t *testing.T) {
	v := newTestValidator(t)

	assert.NoError(t, v.Struct(typePayload{MaintenanceType: "corrective"}))
	assert.NoError(t, v.Struct(typePayload{MaintenanceType: "preventive"}))
	assert.Error(t, v.Struct(typePayload{MaintenanceType: "predictive"}))
}

func TestEmailValidation(t *testing.T) {
	v := newTestValidator(t)

	type emailPayload struct {
		Email string `validate:"email"`
	}
	assert.NoError(t, v.Struct(emailPayload{Email: "tech@example.com"}))
	assert.Error(t, v.Struct(emailPayload{Email: "не почта"}))
}

package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaValidator_ValidateCriteria(t *testing.T) {
	sv, err := NewSchemaValidator()
	require.NoError(t, err)

	t.Run("valid payload passes", func(t *testing.T) {
		result := sv.ValidateCriteria(map[string]interface{}{
			"hardiness_zone":     "5",
			"sun_exposure":       "Full Sun",
			"soil_ph":            6.5,
			"desired_height_min": 1.0,
			"color_preferences":  []string{"White"},
			"native_preference":  true,
		})
		assert.True(t, result.Valid, "errors: %v", result.Errors)
	})

	t.Run("empty payload passes", func(t *testing.T) {
		result := sv.ValidateCriteria(map[string]interface{}{})
		assert.True(t, result.Valid)
	})

	t.Run("unknown field is rejected", func(t *testing.T) {
		result := sv.ValidateCriteria(map[string]interface{}{
			"favourite_color": "blue",
		})
		require.False(t, result.Valid)
		assert.NotEmpty(t, result.Errors)
	})

	t.Run("string soil_ph passes schema for field-level reporting downstream", func(t *testing.T) {
		result := sv.ValidateCriteria(map[string]interface{}{"soil_ph": "abc"})
		assert.True(t, result.Valid)
	})

	t.Run("boolean flag with wrong type is rejected", func(t *testing.T) {
		result := sv.ValidateCriteria(map[string]interface{}{"native_preference": "yes"})
		assert.False(t, result.Valid)
	})

	t.Run("color preferences must be an array", func(t *testing.T) {
		result := sv.ValidateCriteria(map[string]interface{}{"color_preferences": "White"})
		assert.False(t, result.Valid)
	})
}

func TestSchemaValidator_ValidateFeedback(t *testing.T) {
	sv, err := NewSchemaValidator()
	require.NoError(t, err)

	t.Run("valid submission passes", func(t *testing.T) {
		result := sv.ValidateFeedback(map[string]interface{}{
			"request_id": "7e57d004-2b97-0e7a-b45f-5387367791cd",
			"rating":     4,
			"feedback": map[string]interface{}{
				"selected_plant_ids": []string{"7e57d004-2b97-0e7a-b45f-5387367791ce"},
				"comments":           "good list",
			},
		})
		assert.True(t, result.Valid, "errors: %v", result.Errors)
	})

	t.Run("missing rating is rejected", func(t *testing.T) {
		result := sv.ValidateFeedback(map[string]interface{}{
			"request_id": "7e57d004-2b97-0e7a-b45f-5387367791cd",
		})
		assert.False(t, result.Valid)
	})
}

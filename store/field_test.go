package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldProvidedVsOmitted(t *testing.T) {
	var omitted Field
	assert.False(t, omitted.Provided())
	assert.Empty(t, omitted.Value())

	explicit := Set("")
	assert.True(t, explicit.Provided(), "explicit empty is still provided")
	assert.Empty(t, explicit.Value())

	value := Set("Planning")
	assert.True(t, value.Provided())
	assert.Equal(t, "Planning", value.Value())
}

func TestFieldFromPtr(t *testing.T) {
	assert.False(t, FromPtr(nil).Provided())

	empty := ""
	assert.True(t, FromPtr(&empty).Provided())

	title := "Planning"
	assert.Equal(t, "Planning", FromPtr(&title).Value())
}

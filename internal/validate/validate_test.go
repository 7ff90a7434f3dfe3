package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `validate:"required,max=5"`
	Color string `validate:"required,hexcolor,len=7"`
}

func TestStructValid(t *testing.T) {
	assert.NoError(t, Struct(sample{Name: "Work", Color: "#3498db"}))
}

func TestStructCollectsFieldErrors(t *testing.T) {
	err := Struct(sample{Name: "", Color: "blue"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
	assert.Contains(t, err.Error(), "color must be a hex color")
}

func TestStructMaxLength(t *testing.T) {
	err := Struct(sample{Name: "toolong", Color: "#ffffff"})
	require.Error(t, err)
	assert.Equal(t, "name must be at most 5 characters", err.Error())
}

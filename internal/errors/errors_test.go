package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	err := InvalidInputf("yearBuilt %d is in the future", 2031)
	assert.Equal(t, "[INVALID_INPUT] yearBuilt 2031 is in the future", err.Error())

	wrapped := Parsing("bad rate table", fmt.Errorf("unexpected token"))
	assert.Equal(t, "[PARSING_ERROR] bad rate table: unexpected token", wrapped.Error())
}

// TestIsTypeThroughWrapping proves classification survives fmt.Errorf wrapping
func TestIsTypeThroughWrapping(t *testing.T) {
	base := InvalidInput("coverageAmount must not be negative")
	wrapped := fmt.Errorf("estimate: %w", base)

	assert.True(t, IsInvalidInput(wrapped))
	assert.True(t, IsType(wrapped, TypeInvalidInput))
	assert.False(t, IsType(wrapped, TypeConfig))
	assert.Equal(t, TypeInvalidInput, TypeOf(wrapped))
}

func TestTypeOfPlainError(t *testing.T) {
	assert.Equal(t, TypeInternal, TypeOf(fmt.Errorf("boom")))
	assert.False(t, IsInvalidInput(nil))
}

func TestWithContext(t *testing.T) {
	err := Config("missing default region").WithContext("propertyType", "Apartment")
	assert.True(t, err.Is(TypeConfig))
	assert.Equal(t, "Apartment", err.Context["propertyType"])
}

func TestMessageStripsType(t *testing.T) {
	assert.Equal(t, "yearBuilt is required", Message(InvalidInput("yearBuilt is required")))
	assert.Equal(t, "bad date: boom", Message(fmt.Errorf("ctx: %w", Wrap(TypeInvalidInput, "bad date", fmt.Errorf("boom")))))
	assert.Equal(t, "plain", Message(fmt.Errorf("plain")))
}

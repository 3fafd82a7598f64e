package stopgo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigError_MessageIncludesReason(t *testing.T) {
	err := &ConfigError{Reason: "no scoring method enabled"}
	assert.Contains(t, err.Error(), "no scoring method enabled")
}

func TestInputTooShortError_MessageIncludesCounts(t *testing.T) {
	err := &InputTooShortError{Got: 5, Need: 23}
	msg := err.Error()
	assert.Contains(t, msg, "5")
	assert.Contains(t, msg, "23")
}

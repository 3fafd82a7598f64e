package stopgo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptFloat_SomeAndGet(t *testing.T) {
	v, ok := Some(4.2).Get()
	assert.True(t, ok)
	assert.Equal(t, 4.2, v)
}

func TestOptFloat_NoneIsZeroValue(t *testing.T) {
	assert.Equal(t, OptFloat{}, None)
	_, ok := None.Get()
	assert.False(t, ok)
}

func TestOptFloat_OrElse(t *testing.T) {
	assert.Equal(t, 4.2, Some(4.2).OrElse(0))
	assert.Equal(t, 9.9, None.OrElse(9.9))
}

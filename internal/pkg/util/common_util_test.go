package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseID(t *testing.T) {
	assert.Equal(t, uint64(17), ParseID(" 17 "))
	assert.Zero(t, ParseID("-3"))
	assert.Zero(t, ParseID("abc"))
	assert.Zero(t, ParseID(""))
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 20, ClampLimit(0, 20, 100))
	assert.Equal(t, 20, ClampLimit(-5, 20, 100))
	assert.Equal(t, 35, ClampLimit(35, 20, 100))
	assert.Equal(t, 100, ClampLimit(500, 20, 100))
}

package stringutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeftJust(t *testing.T) {
	assert.Equal(t, "CONFIG    ", LeftJust("CONFIG", " ", 10))
	assert.Equal(t, "CONFIG", LeftJust("CONFIG", " ", 3))
	assert.Equal(t, "CONFIG", LeftJust("CONFIG", "", 10))
	assert.Equal(t, "é..", LeftJust("é", ".", 3))
}

func TestQuote(t *testing.T) {
	assert.Equal(t, `"abcd"`, Quote("abcd"))
	assert.Equal(t, `"a"b"`, Quote(`a"b`))
}

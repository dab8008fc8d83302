package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFoldKey(t *testing.T) {
	assert.Equal(t, FoldKey("Białowieża Forest, Poland"), FoldKey("BIAŁOWIEŻA FOREST, POLAND"))
	assert.Equal(t, FoldKey("Sherwood Forest, UK"), FoldKey("  sherwood   forest,  uk "))
	assert.NotEqual(t, FoldKey("Sundarbans, India"), FoldKey("Sundarbans Forest, Bangladesh"))
}

package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitAndTrim(t *testing.T) {
	assert.Equal(t, []string{"http://a.test", "https://b.test"}, SplitAndTrim(" http://a.test , ,https://b.test ", ","))
	assert.Nil(t, SplitAndTrim("  ", ","))
}

func TestRandomKey(t *testing.T) {
	a, b := RandomKey(), RandomKey()
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}

func TestNewRequestID(t *testing.T) {
	assert.Len(t, NewRequestID(), 36)
}

package utils_test

import (
	"testing"

	"github.com/roackb2/octave-chat/internal/pkg/utils"
	"github.com/stretchr/testify/assert"
)

func TestGetOrDefault(t *testing.T) {
	assert.Equal(t, 1, utils.GetOrDefault(1, 2))
	assert.Equal(t, 2, utils.GetOrDefault(0, 2))
	assert.Equal(t, "resp-1", utils.GetOrDefault("resp-1", "fallback"))
	assert.Equal(t, "fallback", utils.GetOrDefault("", "fallback"))
}

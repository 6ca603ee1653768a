package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFullVersion(t *testing.T) {
	assert.Equal(t, "v"+Version, FullVersion())
	assert.NotEmpty(t, Version)
}

package version

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetVersion(t *testing.T) {
	assert.Equal(t, Version, GetVersion())
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid(), "the baked-in version must be valid semver")
}

func TestGet(t *testing.T) {
	info := Get()

	assert.Equal(t, Version, info.Version)
	assert.Equal(t, GitCommit, info.GitCommit)
	assert.Equal(t, BuildDate, info.BuildDate)
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, info.Platform, "/")
	require.NotNil(t, info.SemVer)
	assert.Equal(t, Version, info.SemVer.String())
}

func TestInfoString(t *testing.T) {
	s := Get().String()

	assert.True(t, strings.HasPrefix(s, "modernish v"))
	assert.Contains(t, s, Version)
	assert.Contains(t, s, GitCommit)
}

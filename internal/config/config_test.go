package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("CFG_TEST_KEY", "set")
	assert.Equal(t, "set", GetEnv("CFG_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", GetEnv("CFG_TEST_MISSING", "fallback"))

	t.Setenv("CFG_TEST_EMPTY", "")
	assert.Equal(t, "fallback", GetEnv("CFG_TEST_EMPTY", "fallback"))
}

func TestGetIntEnv(t *testing.T) {
	t.Setenv("CFG_TEST_INT", "42")
	assert.Equal(t, 42, GetIntEnv("CFG_TEST_INT", 7))

	t.Setenv("CFG_TEST_INT", "not-a-number")
	assert.Equal(t, 7, GetIntEnv("CFG_TEST_INT", 7))
	assert.Equal(t, 7, GetIntEnv("CFG_TEST_INT_MISSING", 7))
}

func TestGetDurationEnv(t *testing.T) {
	t.Setenv("CFG_TEST_DUR", "90s")
	assert.Equal(t, 90*time.Second, GetDurationEnv("CFG_TEST_DUR", time.Hour))

	t.Setenv("CFG_TEST_DUR", "bogus")
	assert.Equal(t, time.Hour, GetDurationEnv("CFG_TEST_DUR", time.Hour))
}

func TestIsProduction(t *testing.T) {
	t.Setenv("ENV", "production")
	assert.True(t, IsProduction())

	t.Setenv("ENV", "development")
	assert.False(t, IsProduction())

	t.Setenv("ENV", "")
	assert.False(t, IsProduction())
}

package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInit(t *testing.T) {
	require.NoError(t, Init("debug"))
	assert.NotNil(t, Logger())

	// Unknown levels fall back to info instead of failing.
	require.NoError(t, Init("loud"))
	assert.NotNil(t, Logger())
}

func TestSetLogger(t *testing.T) {
	observed := zap.NewNop()
	SetLogger(observed)
	assert.NotNil(t, Logger())

	// Package-level helpers must not panic regardless of the logger.
	Debugf("debug %d", 1)
	Infof("info %s", "x")
	Warnf("warn")
	Errorf("error")
}

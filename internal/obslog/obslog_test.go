package obslog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AloisRautureau/pif/internal/obslog"
)

func TestNewBuildsAUsableLogger(t *testing.T) {
	logger, err := obslog.New(false)
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.NotPanics(t, func() { logger.Infow("ready", "quiet", false) })
}

func TestNoopDiscardsEverything(t *testing.T) {
	logger := obslog.Noop()
	require.NotNil(t, logger)
	assert.NotPanics(t, func() { logger.Warnw("should not be observed") })
}

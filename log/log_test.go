package log_test

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"pipelined.dev/quadio/log"
)

func TestGetLogger(t *testing.T) {
	l := log.GetLogger()
	assert.NotNil(t, l)
	assert.Contains(t, []logrus.Level{logrus.InfoLevel, logrus.DebugLevel}, l.GetLevel())
}

func TestDiscard(t *testing.T) {
	l := log.Discard()
	assert.False(t, l.IsLevelEnabled(logrus.WarnLevel))
	// must not panic or write anywhere.
	l.WithField("node", "a").Warn("cycle")
}

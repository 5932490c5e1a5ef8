package cli

import (
	"bytes"
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestNewLoggerLevels(t *testing.T) {
	var info, debug bytes.Buffer
	newLogger(&info, log.InfoLevel).Debug("cache miss")
	newLogger(&debug, log.DebugLevel).Debug("cache miss")

	assert.Zero(t, info.Len(), "debug line written at info level")
	assert.Contains(t, debug.String(), "cache miss")
	assert.Regexp(t, `^\d\d:\d\d:\d\d `, debug.String())
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	p := newProgress(newLogger(&buf, log.InfoLevel))
	p.start = p.start.Add(-42 * time.Millisecond)
	p.done("Scanned 3 documents")

	assert.Regexp(t, regexp.MustCompile(`Scanned 3 documents \(\d+ms\)`), buf.String())
}

func TestLoggerContext(t *testing.T) {
	assert.Same(t, log.Default(), loggerFromContext(context.Background()))

	custom := newLogger(&bytes.Buffer{}, log.InfoLevel)
	assert.Same(t, custom, loggerFromContext(withLogger(context.Background(), custom)))
}

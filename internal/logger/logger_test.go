package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuietByDefault(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)
	SetVerbose(false)

	Debug("hidden %d", 1)
	Info("hidden")
	Warn("hidden")
	assert.Empty(t, buf.String())
}

func TestVerboseWritesLevels(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)
	SetVerbose(true)
	defer SetVerbose(false)

	Debug("loading %s", "index")
	Info("loaded")
	Warn("slow")

	out := buf.String()
	assert.Contains(t, out, "[DEBUG] loading index")
	assert.Contains(t, out, "[INFO] loaded")
	assert.Contains(t, out, "[WARN] slow")
}

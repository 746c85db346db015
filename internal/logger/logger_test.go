package logger

import (
	"bytes"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func resetAfter(t *testing.T) *bytes.Buffer {
	t.Helper()
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	var buf bytes.Buffer
	SetOutput(&buf)
	return &buf
}

func TestVerboseToggle(t *testing.T) {
	resetAfter(t)

	SetVerbose(false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())
}

func TestDebugOnlyWhenVerbose(t *testing.T) {
	buf := resetAfter(t)

	SetVerbose(false)
	Debug("fetched page %d", 3)
	assert.Zero(t, buf.Len())

	SetVerbose(true)
	Debug("fetched page %d", 3)
	assert.Equal(t, "[DEBUG] fetched page 3\n", buf.String())
}

func TestLevelsAndSection(t *testing.T) {
	buf := resetAfter(t)
	SetVerbose(true)

	Info("consolidated %d cases", 12)
	Warn("source %s unavailable", "portaltj")
	Section("Write Phase")

	out := buf.String()
	assert.Contains(t, out, "[INFO] consolidated 12 cases\n")
	assert.Contains(t, out, "[WARN] source portaltj unavailable\n")
	assert.Contains(t, out, "\n=== Write Phase ===\n")
}

func TestConcurrentUse(t *testing.T) {
	resetAfter(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			SetVerbose(true)
			Debug("worker %d", n)
			IsVerbose()
		}(i)
	}
	wg.Wait()
}

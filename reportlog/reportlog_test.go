package reportlog

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/finops-claw-gang/darklaunch"
)

func sampleReport() darklaunch.Report {
	return darklaunch.Report{
		CallID:      "c-123",
		Mode:        darklaunch.ModeNewCompare,
		Method:      "quote",
		OldResult:   "old",
		NewResult:   "new",
		OldDuration: 5 * time.Millisecond,
		NewDuration: 12 * time.Millisecond,
	}
}

func TestLine(t *testing.T) {
	t.Parallel()

	line := Line("pricing", sampleReport())
	assert.Contains(t, line, "pricing")
	assert.Contains(t, line, "quote")
	assert.Contains(t, line, "new-compare")
	assert.Contains(t, line, "c-123")
	assert.Contains(t, line, "old")
	assert.Contains(t, line, "new")
}

func TestCallback_Slog(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	Callback("pricing", Slog(logger))(sampleReport())

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "diverged")
	assert.Contains(t, out, "pricing")
}

func TestCallback_Zerolog(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	Callback("pricing", Zerolog(logger))(sampleReport())

	out := buf.String()
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, "diverged")
	assert.Contains(t, out, "pricing")
}

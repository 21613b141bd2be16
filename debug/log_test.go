package debug

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogWritesCategoryLines(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer Disable()

	Log("sched", "beat %d bar %d", 2, 7)
	line := buf.String()
	assert.Contains(t, line, "sched")
	assert.Contains(t, line, "beat 2 bar 7")
	assert.Regexp(t, `^\d{2}:\d{2}:\d{2}\.\d{3} sched`, line)
	assert.True(t, Enabled())
}

func TestDisabledLogIsSilent(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	Disable()

	Log("drone", "ignored")
	assert.Empty(t, buf.String())
	assert.False(t, Enabled())
}

func TestLogEvery(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer Disable()

	for i := 0; i < 9; i++ {
		LogEvery(3, "tui", "render")
	}
	assert.Equal(t, 3, strings.Count(buf.String(), "render"))
}

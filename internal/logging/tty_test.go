package logging

import (
	"bytes"
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestSupportsColor(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		isTTY bool
		want  bool
	}{
		{name: "tty without overrides", isTTY: true, want: true},
		{name: "NO_COLOR prevents color", env: map[string]string{"NO_COLOR": "1"}, isTTY: true, want: false},
		{name: "TERM=dumb prevents color", env: map[string]string{"TERM": "dumb"}, isTTY: true, want: false},
		{name: "non-TTY prevents color", isTTY: false, want: false},
		{name: "CLICOLOR_FORCE on a pipe", env: map[string]string{"CLICOLOR_FORCE": "1"}, isTTY: false, want: true},
		{name: "CLICOLOR_FORCE=0 is ignored", env: map[string]string{"CLICOLOR_FORCE": "0"}, isTTY: false, want: false},
		{name: "NO_COLOR beats CLICOLOR_FORCE", env: map[string]string{"NO_COLOR": "", "CLICOLOR_FORCE": "1"}, isTTY: true, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearColorEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			assert.Equal(t, tt.want, supportsColor(tt.isTTY))
		})
	}
}

func TestIsTTY_Buffer(t *testing.T) {
	assert.False(t, IsTTY(&bytes.Buffer{}))
}

func TestConfigureColor(t *testing.T) {
	clearColorEnv(t)
	saved := color.NoColor
	t.Cleanup(func() { color.NoColor = saved })

	color.NoColor = false
	prev := ConfigureColor(&bytes.Buffer{})
	assert.False(t, prev)
	assert.True(t, color.NoColor, "buffers never get colors")

	t.Setenv("CLICOLOR_FORCE", "1")
	prev = ConfigureColor(&bytes.Buffer{})
	assert.True(t, prev)
	assert.False(t, color.NoColor)
}

// clearColorEnv unsets the color variables for the duration of the test.
func clearColorEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"NO_COLOR", "TERM", "CLICOLOR_FORCE"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

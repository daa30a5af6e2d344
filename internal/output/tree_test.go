package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderFileTree_Empty(t *testing.T) {
	assert.Empty(t, RenderFileTree("avionics_common", nil))
}

func TestRenderFileTree_Layout(t *testing.T) {
	out := RenderFileTree("avionics_common", map[string]string{
		"package.yaml":     "manifest",
		"location.py":      "",
		"network/tcp.py":   "",
		"network/udp.py":   "",
		"logger/logger.py": "",
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Equal(t, "avionics_common/", stripANSI(lines[0]))

	// Directories sort before files, both alphabetically.
	assert.Contains(t, out, "logger/")
	assert.Contains(t, out, "network/")
	assert.Contains(t, out, "tcp.py")
	assert.Contains(t, out, "package.yaml")
	assert.Contains(t, out, "manifest")

	loggerIdx := strings.Index(out, "logger/")
	manifestIdx := strings.Index(out, "package.yaml")
	assert.Less(t, loggerIdx, manifestIdx, "directories render before files")
}

func TestFormatModuleLine(t *testing.T) {
	line := stripANSI(FormatModuleLine("network", StatusStaged))

	assert.True(t, strings.HasPrefix(line, "m:network"))
	assert.True(t, strings.HasSuffix(line, StatusStaged))

	// Status column stays aligned for short names.
	other := stripANSI(FormatModuleLine("qr", StatusStale))
	assert.Equal(t,
		strings.Index(line, StatusStaged),
		strings.Index(other, StatusStale),
	)
}

func TestFormatModuleLine_LongName(t *testing.T) {
	long := strings.Repeat("x", 40)
	line := stripANSI(FormatModuleLine(long, StatusStaged))
	assert.Contains(t, line, long+"  "+StatusStaged)
}

func TestIndentDiff(t *testing.T) {
	assert.Empty(t, IndentDiff("", "  "))

	out := IndentDiff("one\n\ntwo", "  ")
	assert.Equal(t, "  one\n  two\n", out)
}

func TestDiffRenderer(t *testing.T) {
	r := NewDiffRenderer()

	assert.Equal(t, "  + network", stripANSI(r.RenderAdded("network")))
	assert.Equal(t, "  - camera", stripANSI(r.RenderRemoved("camera")))
	assert.Contains(t, stripANSI(r.RenderAddedHeader()), "Missing from staged layout:")
	assert.Contains(t, stripANSI(r.RenderRemovedHeader()), "Stale in staged layout:")
}

// stripANSI removes escape sequences so assertions hold with or without a TTY.
func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
		case r == '\x1b':
			inEscape = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

package console

import (
	"strings"
	"sync"
)

// maxTranscriptLines bounds the lines a Transcript keeps.
const maxTranscriptLines = 1000

// Transcript collects console output as lines. It is the output writer of
// the TUI, where commands must not print to the terminal directly.
type Transcript struct {
	mu      sync.Mutex
	lines   []string
	partial string
}

func NewTranscript() *Transcript {
	return &Transcript{}
}

// Write appends p, splitting it into lines. A trailing fragment without a
// newline is kept until the next write completes it.
func (t *Transcript) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	text := t.partial + string(p)
	parts := strings.Split(text, "\n")
	t.partial = parts[len(parts)-1]
	t.append(parts[:len(parts)-1]...)
	return len(p), nil
}

// Append adds complete lines.
func (t *Transcript) Append(lines ...string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.flush()
	t.append(lines...)
}

// Lines returns a copy of the lines, including an unterminated fragment.
func (t *Transcript) Lines() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]string, len(t.lines), len(t.lines)+1)
	copy(out, t.lines)
	if t.partial != "" {
		out = append(out, t.partial)
	}
	return out
}

// Len returns the number of complete lines.
func (t *Transcript) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.lines)
}

func (t *Transcript) flush() {
	if t.partial != "" {
		t.append(t.partial)
		t.partial = ""
	}
}

func (t *Transcript) append(lines ...string) {
	for _, line := range lines {
		t.lines = append(t.lines, strings.TrimSuffix(line, "\r"))
	}
	if over := len(t.lines) - maxTranscriptLines; over > 0 {
		t.lines = append(t.lines[:0:0], t.lines[over:]...)
	}
}

package encoder

import (
	"fmt"
	"strings"
)

// stderrTailLines bounds how much ffmpeg output a PassError carries.
const stderrTailLines = 12

// PassError reports a failed ffmpeg invocation, identifying which pass
// failed and carrying the tail of its stderr output.
type PassError struct {
	Pass   int
	Stderr string
	Err    error
}

func (e *PassError) Error() string {
	name := "first"
	if e.Pass == SecondPass {
		name = "second"
	}
	if e.Stderr == "" {
		return fmt.Sprintf("the %s encoding pass failed: %v", name, e.Err)
	}
	return fmt.Sprintf("the %s encoding pass failed: %v\n%s", name, e.Err, e.Stderr)
}

func (e *PassError) Unwrap() error {
	return e.Err
}

// stderrTail keeps the last few lines of ffmpeg output, which is where
// it reports the actual failure reason.
func stderrTail(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > stderrTailLines {
		lines = lines[len(lines)-stderrTailLines:]
	}
	return strings.Join(lines, "\n")
}

// Package probe queries source media properties via ffprobe.
package probe

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

const ffprobeBinary = "ffprobe"

// runner executes ffprobe and returns its stdout. Tests substitute a fake.
type runner interface {
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Prober asks ffprobe about media files.
type Prober struct {
	run runner
}

// New returns a Prober that shells out to ffprobe.
func New() *Prober {
	return &Prober{run: execRunner{}}
}

// Duration returns the container duration of the file at path.
func (p *Prober) Duration(ctx context.Context, path string) (time.Duration, error) {
	out, err := p.run.Output(ctx, ffprobeBinary,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "csv=p=0",
		path,
	)
	if err != nil {
		return 0, fmt.Errorf("ffprobe %s: %w", path, err)
	}

	d, err := parseDuration(string(out))
	if err != nil {
		return 0, fmt.Errorf("ffprobe %s: %w", path, err)
	}
	return d, nil
}

// parseDuration interprets ffprobe's duration output, a float in
// seconds (or N/A for streams without a known duration).
func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "N/A" {
		return 0, fmt.Errorf("no duration reported")
	}

	secs, err := strconv.ParseFloat(s, 64)
	if err != nil || secs <= 0 {
		return 0, fmt.Errorf("unusable duration %q", s)
	}

	return time.Duration(secs * float64(time.Second)), nil
}

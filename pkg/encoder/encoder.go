// Package encoder runs the external two-pass libvpx-vp9 encode that
// turns a trim plan into a WebM file. All video work is delegated to
// ffmpeg; this package only builds argument lists and supervises the
// two invocations.
package encoder

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/gofrs/flock"
)

const ffmpegBinary = "ffmpeg"

// Runner executes an external command, streaming its stderr to the
// given writer. The default implementation shells out; tests substitute
// a fake.
type Runner interface {
	Run(ctx context.Context, name string, args []string, stderr io.Writer) error
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args []string, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = stderr
	return cmd.Run()
}

// Encoder supervises a two-pass encode.
type Encoder struct {
	Runner Runner

	// ShowOutput tees ffmpeg's stderr to the terminal in real time.
	// It is always captured for error reporting either way.
	ShowOutput bool
}

// New returns an Encoder that shells out to ffmpeg.
func New() *Encoder {
	return &Encoder{Runner: execRunner{}}
}

// Encode runs the first (analysis) pass and then the second (writing)
// pass of plan. A first-pass failure aborts before the second pass
// starts. While encoding, a file lock on the pass-log prefix keeps
// concurrent runs from corrupting each other's two-pass statistics.
func (e *Encoder) Encode(ctx context.Context, plan Plan) error {
	if err := plan.Validate(); err != nil {
		return err
	}

	if plan.PassLogPrefix != "" {
		lockPath := plan.PassLogPrefix + ".lock"
		lock := flock.New(lockPath)

		ok, err := lock.TryLock()
		if err != nil {
			return fmt.Errorf("acquire pass log lock: %w", err)
		}
		if !ok {
			return fmt.Errorf("another trimshare run is already encoding with pass log %s", plan.PassLogPrefix)
		}
		defer func() {
			_ = lock.Unlock()
			_ = os.Remove(lockPath)
		}()
		defer removePassLogs(plan.PassLogPrefix)
	}

	if err := e.runPass(ctx, plan, FirstPass); err != nil {
		return err
	}
	return e.runPass(ctx, plan, SecondPass)
}

func (e *Encoder) runPass(ctx context.Context, plan Plan, pass int) error {
	var buf bytes.Buffer
	var stderr io.Writer = &buf
	if e.ShowOutput {
		stderr = io.MultiWriter(&buf, os.Stderr)
	}

	if err := e.Runner.Run(ctx, ffmpegBinary, plan.PassArgs(pass), stderr); err != nil {
		return &PassError{Pass: pass, Stderr: stderrTail(buf.String()), Err: err}
	}
	return nil
}

// removePassLogs cleans up the first-pass statistics files. ffmpeg
// numbers them per output stream: <prefix>-0.log and so on.
func removePassLogs(prefix string) {
	for i := 0; ; i++ {
		path := fmt.Sprintf("%s-%d.log", prefix, i)
		if err := os.Remove(path); err != nil {
			return
		}
	}
}

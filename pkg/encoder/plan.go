package encoder

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Passes of the two-pass encode.
const (
	FirstPass  = 1
	SecondPass = 2
)

// Quality bounds for libvpx-vp9 CRF mode.
const (
	MinQuality = 0
	MaxQuality = 63
)

// Plan describes a single two-pass vp9 trim. Start and End are passed
// to ffmpeg verbatim (it accepts the same H:MM:SS and seconds forms the
// CLI validates); empty means "from the beginning" / "to the end".
type Plan struct {
	Input   string
	Output  string
	Start   string
	End     string
	Quality int // CRF, 0-63, lower is better

	// Height scales the output to this vertical resolution, with the
	// horizontal resolution following automatically. Zero keeps the
	// source resolution.
	Height int

	// PassLogPrefix is handed to ffmpeg as -passlogfile so first-pass
	// statistics do not land in the working directory.
	PassLogPrefix string
}

// Validate reports the first problem that would make both passes fail.
func (p Plan) Validate() error {
	if p.Input == "" {
		return errors.New("plan has no input file")
	}
	if p.Output == "" {
		return errors.New("plan has no output file")
	}
	if p.Quality < MinQuality || p.Quality > MaxQuality {
		return fmt.Errorf("quality %d out of range %d-%d", p.Quality, MinQuality, MaxQuality)
	}
	if p.Height < 0 {
		return fmt.Errorf("resolution %d is negative", p.Height)
	}
	return nil
}

// PassArgs returns the complete ffmpeg argument list for the given
// pass. The first pass analyzes only (no audio, null muxer); the
// second writes the output file.
func (p Plan) PassArgs(pass int) []string {
	args := make([]string, 0, 24)
	args = append(args, "-hide_banner", "-nostdin", "-i", p.Input)

	if p.Start != "" {
		args = append(args, "-ss", p.Start)
	}
	if p.End != "" {
		args = append(args, "-to", p.End)
	}

	args = append(args,
		"-c:v", "libvpx-vp9",
		"-b:v", "0",
		"-crf", strconv.Itoa(p.Quality),
	)

	if p.Height > 0 {
		args = append(args, "-vf", fmt.Sprintf("scale=-1:%d", p.Height))
	}

	args = append(args, "-row-mt", "1", "-pass", strconv.Itoa(pass))

	if p.PassLogPrefix != "" {
		args = append(args, "-passlogfile", p.PassLogPrefix)
	}

	if pass == FirstPass {
		args = append(args, "-an", "-f", "null", os.DevNull)
	} else {
		args = append(args, p.Output)
	}

	return args
}

// CommandLine renders the pass as a printable command line, as shown by
// --dry-run and debug logging.
func (p Plan) CommandLine(pass int) string {
	return ffmpegBinary + " " + strings.Join(p.PassArgs(pass), " ")
}

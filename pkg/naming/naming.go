// Package naming infers the output file name for a trimmed clip.
// When the caller supplies no name, the input's extension is replaced
// with .webm, falling back to a timestamp-qualified variant when the
// plain name is already taken. The resolver only reads the filesystem;
// it never creates or modifies anything.
package naming

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Clock supplies the current local time. Production callers pass
// time.Now; tests freeze it.
type Clock func() time.Time

var (
	// ErrSameAsInput is returned when an explicit output name is
	// identical to the input name.
	ErrSameAsInput = errors.New("output video must be different from the input video")

	// ErrNameExhausted is returned when both the plain and the
	// timestamp-qualified auto-generated names already exist.
	ErrNameExhausted = errors.New("could not generate a safe output name")
)

const (
	outputExt   = ".webm"
	fallbackTag = "-trimshare-"

	// One-second granularity. Two runs for the same base within the
	// same second, with both candidate names taken, will exhaust.
	timestampLayout = "2006-01-02-150405"
)

// Resolve returns the file name the trimmed clip should be written to.
//
// A non-empty explicit name is returned unchanged, regardless of
// filesystem state, unless it equals input exactly. An empty explicit
// name triggers auto-generation: the input's final extension (the
// segment after the last dot, if any) is replaced with .webm, and if
// that file already exists a "-trimshare-<timestamp>" suffix is
// inserted before the extension.
func Resolve(explicit, input string, now Clock) (string, error) {
	if explicit != "" {
		if explicit == input {
			return "", fmt.Errorf("%w: %s", ErrSameAsInput, input)
		}
		return explicit, nil
	}

	// Strip the final extension if there is one. Earlier dots are part
	// of the name and stay untouched.
	base := input
	if i := strings.LastIndex(base, "."); i >= 0 {
		base = base[:i]
	}

	primary := base + outputExt
	if !exists(primary) {
		return primary, nil
	}

	fallback := base + fallbackTag + now().Format(timestampLayout) + outputExt
	if !exists(fallback) {
		return fallback, nil
	}

	return "", fmt.Errorf("%w for %s", ErrNameExhausted, base)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

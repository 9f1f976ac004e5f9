package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// CreateFile writes content at path, creating parent directories as needed.
func CreateFile(t *testing.T, path, content string) {
	t.Helper()

	err := os.MkdirAll(filepath.Dir(path), 0o755)
	require.NoError(t, err)

	err = os.WriteFile(path, []byte(content), 0o644)
	require.NoError(t, err)
}

// Touch creates an empty file at path, creating parent directories as needed.
func Touch(t *testing.T, path string) {
	t.Helper()
	CreateFile(t, path, "")
}

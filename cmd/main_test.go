package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trimshare/internal/testutil"
	"trimshare/pkg/history"
	"trimshare/pkg/naming"
)

func resetCommandGlobals(t *testing.T) {
	t.Helper()

	prevOutput := outputName
	prevStart := startTime
	prevEnd := endTime
	prevQuality := quality
	prevResolution := resolution
	prevDryRun := dryRun
	prevDebug := debugMode
	prevConfig := configPath

	outputName, startTime, endTime = "", "", ""
	quality, resolution = -1, 0
	dryRun, debugMode = false, false
	configPath = ""

	t.Cleanup(func() {
		outputName = prevOutput
		startTime = prevStart
		endTime = prevEnd
		quality = prevQuality
		resolution = prevResolution
		dryRun = prevDryRun
		debugMode = prevDebug
		configPath = prevConfig
	})
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	oldStdout := os.Stdout
	reader, writer, err := os.Pipe()
	require.NoError(t, err)

	os.Stdout = writer
	defer func() {
		os.Stdout = oldStdout
	}()

	fn()

	require.NoError(t, writer.Close())
	out, err := io.ReadAll(reader)
	require.NoError(t, err)
	require.NoError(t, reader.Close())

	return string(out)
}

// writeTestConfig writes a config file that keeps tests away from the
// user's real config and history.
func writeTestConfig(t *testing.T, dir, content string) string {
	t.Helper()

	path := filepath.Join(dir, "config.toml")
	testutil.CreateFile(t, path, content)
	return path
}

func TestRunTrim_DryRun(t *testing.T) {
	tmpDir := t.TempDir()
	input := filepath.Join(tmpDir, "myvideo.mp4")
	testutil.CreateFile(t, input, "not really a video")

	resetCommandGlobals(t)
	dryRun = true
	startTime = "0:23"
	endTime = "0:49"
	configPath = writeTestConfig(t, tmpDir, "[history]\nenabled = false\n")

	output := captureStdout(t, func() {
		err := runTrim(nil, []string{input})
		require.NoError(t, err)
	})

	assert.Contains(t, output, "=== DRY RUN - nothing will be encoded ===")
	assert.Contains(t, output, "-pass 1")
	assert.Contains(t, output, "-pass 2")
	assert.Contains(t, output, "-ss 0:23")
	assert.Contains(t, output, "-to 0:49")
	assert.Contains(t, output, "-crf 50", "config default quality applies when the flag is unset")
	assert.Contains(t, output, "Would write "+filepath.Join(tmpDir, "myvideo.webm"))

	_, err := os.Stat(filepath.Join(tmpDir, "myvideo.webm"))
	assert.True(t, os.IsNotExist(err), "dry-run must not create output files")
}

func TestRunTrim_FlagsBeatConfig(t *testing.T) {
	tmpDir := t.TempDir()
	input := filepath.Join(tmpDir, "myvideo.mp4")
	testutil.CreateFile(t, input, "x")

	resetCommandGlobals(t)
	dryRun = true
	quality = 30
	resolution = 480
	configPath = writeTestConfig(t, tmpDir, "quality = 60\nheight = 1080\n\n[history]\nenabled = false\n")

	output := captureStdout(t, func() {
		err := runTrim(nil, []string{input})
		require.NoError(t, err)
	})

	assert.Contains(t, output, "-crf 30")
	assert.Contains(t, output, "scale=-1:480")
}

func TestRunTrim_MissingInput(t *testing.T) {
	tmpDir := t.TempDir()

	resetCommandGlobals(t)
	configPath = writeTestConfig(t, tmpDir, "[history]\nenabled = false\n")

	err := runTrim(nil, []string{filepath.Join(tmpDir, "nope.mp4")})
	assert.ErrorContains(t, err, "no file called")
}

func TestRunTrim_OutputSameAsInput(t *testing.T) {
	tmpDir := t.TempDir()
	input := filepath.Join(tmpDir, "myvideo.webm")
	testutil.CreateFile(t, input, "x")

	resetCommandGlobals(t)
	outputName = input
	configPath = writeTestConfig(t, tmpDir, "[history]\nenabled = false\n")

	err := runTrim(nil, []string{input})
	assert.ErrorIs(t, err, naming.ErrSameAsInput)
}

func TestRunTrim_EndBeforeStart(t *testing.T) {
	tmpDir := t.TempDir()
	input := filepath.Join(tmpDir, "myvideo.mp4")
	testutil.CreateFile(t, input, "x")

	resetCommandGlobals(t)
	startTime = "0:49"
	endTime = "0:23"
	configPath = writeTestConfig(t, tmpDir, "[history]\nenabled = false\n")

	err := runTrim(nil, []string{input})
	assert.ErrorContains(t, err, "not after")
}

func TestRunTrim_QualityOutOfRange(t *testing.T) {
	tmpDir := t.TempDir()
	input := filepath.Join(tmpDir, "myvideo.mp4")
	testutil.CreateFile(t, input, "x")

	resetCommandGlobals(t)
	dryRun = true
	quality = 99
	configPath = writeTestConfig(t, tmpDir, "[history]\nenabled = false\n")

	err := runTrim(nil, []string{input})
	assert.ErrorContains(t, err, "quality")
}

func TestRunHistory_Empty(t *testing.T) {
	tmpDir := t.TempDir()

	resetCommandGlobals(t)
	dbPath := filepath.Join(tmpDir, "history.db")
	configPath = writeTestConfig(t, tmpDir, "[history]\nenabled = true\npath = '"+dbPath+"'\n")

	output := captureStdout(t, func() {
		err := runHistory(10)
		require.NoError(t, err)
	})

	assert.Contains(t, output, "No trims recorded yet.")
}

func TestRunHistory_Disabled(t *testing.T) {
	tmpDir := t.TempDir()

	resetCommandGlobals(t)
	configPath = writeTestConfig(t, tmpDir, "[history]\nenabled = false\n")

	output := captureStdout(t, func() {
		err := runHistory(10)
		require.NoError(t, err)
	})

	assert.Contains(t, output, "disabled")
}

func TestRunHistory_ListsRecords(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "history.db")

	store, err := history.Open(dbPath)
	require.NoError(t, err)
	_, err = store.Add(history.Record{
		Input:       "match.mkv",
		Output:      "match.webm",
		Start:       "0:23",
		End:         "0:49",
		Quality:     50,
		OutputBytes: 2048,
	})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	resetCommandGlobals(t)
	configPath = writeTestConfig(t, tmpDir, "[history]\nenabled = true\npath = '"+dbPath+"'\n")

	output := captureStdout(t, func() {
		err := runHistory(10)
		require.NoError(t, err)
	})

	assert.Contains(t, output, "match.mkv")
	assert.Contains(t, output, "match.webm")
	assert.Contains(t, output, "0:23 to 0:49")
	assert.Contains(t, output, "2.00 KB")
}

func TestRunDoctor_AllPresent(t *testing.T) {
	look := func(name string) (string, error) {
		return "/usr/bin/" + name, nil
	}

	output := captureStdout(t, func() {
		err := runDoctor(look)
		require.NoError(t, err)
	})

	assert.Contains(t, output, "ok       ffmpeg")
	assert.Contains(t, output, "ok       ffprobe")
	assert.Contains(t, output, "All dependencies are installed.")
}

func TestRunDoctor_MissingFfmpeg(t *testing.T) {
	look := func(name string) (string, error) {
		if name == "ffmpeg" {
			return "", errors.New("not found")
		}
		return "/usr/bin/" + name, nil
	}

	var err error
	output := captureStdout(t, func() {
		err = runDoctor(look)
	})

	assert.Error(t, err)
	assert.Contains(t, output, "MISSING  ffmpeg")
	assert.Contains(t, output, ffmpegInstallURL)
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 bytes", formatBytes(512))
	assert.Equal(t, "2.00 KB", formatBytes(2048))
	assert.Equal(t, "1.50 MB", formatBytes(1572864))
	assert.Equal(t, "1.00 GB", formatBytes(1073741824))
}

func TestFormatRange(t *testing.T) {
	assert.Equal(t, "full", formatRange("", ""))
	assert.Equal(t, "start to 0:49", formatRange("", "0:49"))
	assert.Equal(t, "0:23 to end", formatRange("0:23", ""))
	assert.Equal(t, "0:23 to 0:49", formatRange("0:23", "0:49"))
}

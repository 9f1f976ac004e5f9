package main

import (
	"errors"
	"fmt"
	"os/exec"

	"github.com/spf13/cobra"
)

const ffmpegInstallURL = "https://ffmpeg.org/download.html"

func buildDoctorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that ffmpeg and ffprobe are installed",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runDoctor(exec.LookPath)
		},
	}
}

// runDoctor checks the external collaborators are on PATH. The lookup
// function is a parameter so tests can fake missing binaries.
func runDoctor(look func(string) (string, error)) error {
	fmt.Println("Checking dependencies...")
	fmt.Println()

	missing := false
	for _, tool := range []string{"ffmpeg", "ffprobe"} {
		if path, err := look(tool); err != nil {
			fmt.Printf("MISSING  %s\n", tool)
			missing = true
		} else {
			fmt.Printf("ok       %s (%s)\n", tool, path)
		}
	}

	fmt.Println()
	if missing {
		fmt.Printf("Install ffmpeg (which provides ffprobe) from: %s\n", ffmpegInstallURL)
		return errors.New("missing dependencies")
	}

	fmt.Println("All dependencies are installed.")
	return nil
}

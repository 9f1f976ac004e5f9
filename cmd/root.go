package main

import (
	"github.com/spf13/cobra"
)

var version = "0.3.0"

var (
	outputName string
	startTime  string
	endTime    string
	quality    int
	resolution int
	dryRun     bool
	debugMode  bool
	configPath string
)

func buildRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trimshare <in_video>",
		Short: "Trim a video and convert it to webm for easy sharing",
		Long: `trimshare makes short clips out of long video files. It then converts
them to webm with the vp9 codec. By default, the quality is CRF 50.
At 720p and 60 fps, a clip of 10-30 seconds is usually less than 8 MB.

If no output name is given, one is chosen next to the input video: the
extension is swapped for .webm, and a -trimshare-<timestamp> suffix is
added if that name is already taken. trimshare never overwrites an
existing file.

Examples:
  # Grab 0:23-0:49 of example.mkv, writing example.webm
  trimshare example.mkv -s 0:23 -e 0:49

  # Same clip at 480p, higher quality, with an explicit output name
  trimshare example.mkv -s 0:23 -e 0:49 -r 480 -q 40 -o clip.webm

  # Show the ffmpeg commands without encoding anything
  trimshare example.mkv -s 0:23 -e 0:49 --dry-run

Commands:
  history    List recently made clips
  doctor     Check that ffmpeg and ffprobe are installed`,
		Args:    cobra.ExactArgs(1),
		Version: version,
		RunE:    runTrim,
	}

	cmd.Flags().StringVarP(&outputName, "output", "o", "", "Export the trimmed clip to this path (default: inferred from the input name)")
	cmd.Flags().StringVarP(&startTime, "start", "s", "", "Start the clip at this point in time (default: the start of the source)")
	cmd.Flags().StringVarP(&endTime, "end", "e", "", "End the clip at this point in time (default: the end of the source)")
	cmd.Flags().IntVarP(&quality, "quality", "q", -1, "Output vp9 quality (CRF mode), 0-63, lower is better (default 50)")
	cmd.Flags().IntVarP(&resolution, "resolution", "r", 0, "Scale the output to this vertical resolution in pixels (default: keep the source resolution)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the ffmpeg commands without encoding anything")
	cmd.Flags().BoolVar(&debugMode, "debug", false, "Show debugging info while this runs")
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the config file (default: <user config dir>/trimshare/config.toml)")

	return cmd
}

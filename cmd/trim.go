package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"trimshare/internal/logging"
	"trimshare/pkg/config"
	"trimshare/pkg/encoder"
	"trimshare/pkg/history"
	"trimshare/pkg/naming"
	"trimshare/pkg/probe"
	"trimshare/pkg/timecode"
)

func runTrim(_ *cobra.Command, args []string) error {
	input := args[0]
	logger := logging.New(os.Stderr, debugMode)

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// Flags beat the config file; -1 and 0 mean "not given".
	crf := quality
	if crf < 0 {
		crf = cfg.Quality
	}
	height := resolution
	if height == 0 {
		height = cfg.Height
	}

	if _, err := os.Stat(input); err != nil {
		return fmt.Errorf("no file called %s", input)
	}

	_, endSec, err := timecode.Range(startTime, endTime)
	if err != nil {
		return err
	}

	out, err := naming.Resolve(outputName, input, time.Now)
	if err != nil {
		return err
	}

	logger.Debug().
		Str("input", input).
		Str("output", out).
		Str("start", startTime).
		Str("end", endTime).
		Int("quality", crf).
		Int("resolution", height).
		Msg("given args")

	ctx := context.Background()
	if dur, err := probe.New().Duration(ctx, input); err != nil {
		logger.Debug().Err(err).Msg("could not probe input duration")
	} else {
		logger.Debug().Stringer("duration", dur).Msg("probed input")
		if endSec > dur.Seconds() {
			logger.Warn().
				Str("end", endTime).
				Str("source_end", timecode.Format(dur.Seconds())).
				Msg("end time is past the end of the source; the clip will stop at the source end")
		}
	}

	plan := encoder.Plan{
		Input:         input,
		Output:        out,
		Start:         startTime,
		End:           endTime,
		Quality:       crf,
		Height:        height,
		PassLogPrefix: out + ".ffpass",
	}
	if err := plan.Validate(); err != nil {
		return err
	}

	logger.Debug().Str("pass1", plan.CommandLine(encoder.FirstPass)).Msg("first pass")
	logger.Debug().Str("pass2", plan.CommandLine(encoder.SecondPass)).Msg("second pass")

	if dryRun {
		fmt.Println("=== DRY RUN - nothing will be encoded ===")
		fmt.Println(plan.CommandLine(encoder.FirstPass))
		fmt.Println(plan.CommandLine(encoder.SecondPass))
		fmt.Println()
		fmt.Printf("Would write %s\n", out)
		return nil
	}

	enc := encoder.New()
	enc.ShowOutput = true
	if err := enc.Encode(ctx, plan); err != nil {
		return err
	}

	size := recordTrim(logger, cfg, plan)
	if size > 0 {
		fmt.Printf("Wrote %s (%s)\n", out, formatBytes(size))
	} else {
		fmt.Printf("Wrote %s\n", out)
	}

	return nil
}

// recordTrim stats the output and appends it to the trim history.
// History problems never fail a trim that already finished; they are
// only visible with --debug.
func recordTrim(logger zerolog.Logger, cfg config.Config, plan encoder.Plan) int64 {
	var size int64
	if info, err := os.Stat(plan.Output); err == nil {
		size = info.Size()
	}

	if !cfg.History.Enabled {
		return size
	}

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		logger.Debug().Err(err).Msg("history unavailable")
		return size
	}
	defer store.Close()

	if _, err := store.Add(history.Record{
		Input:       plan.Input,
		Output:      plan.Output,
		Start:       plan.Start,
		End:         plan.End,
		Quality:     plan.Quality,
		Height:      plan.Height,
		OutputBytes: size,
	}); err != nil {
		logger.Debug().Err(err).Msg("could not record trim")
	}

	return size
}

func formatBytes(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/GB)
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%d bytes", bytes)
	}
}

// Package cmd implements the CLI commands for scenecut.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/doedja/scenecut"
	"github.com/doedja/scenecut/internal/errors"
	"github.com/doedja/scenecut/internal/format"
	"github.com/doedja/scenecut/internal/logging"
	"github.com/doedja/scenecut/internal/reporter"
	"github.com/doedja/scenecut/internal/util"
)

const (
	appName    = "scenecut"
	appVersion = "0.3.1"
)

var (
	flagOutput      string
	flagFormat      string
	flagSensitivity string
	flagSearchRange string
	flagThreshold   string
	flagMinSceneLen int
	flagQuiet       bool
	flagVerbose     bool
)

// rootCmd represents the base command: one video in, one cut list out.
var rootCmd = &cobra.Command{
	Use:   "scenecut <video-file>",
	Short: "Detect scene changes in a video file",
	Long: `Scenecut finds scene boundaries in a video by motion-estimating every
16x16 block of each frame against the previous one and flagging frames
where too many blocks cannot be predicted.

Results are written as JSON by default; use --format for CSV, Aegisub
keyframe, or plain timecode output. Decoding requires ffmpeg and ffprobe
on PATH.

Examples:
  # Print the cut list as JSON
  scenecut movie.mkv

  # Aegisub keyframe file, more aggressive detection
  scenecut -s high -f aegisub -o movie_keyframes.txt movie.mkv

  # Custom thresholds and a minimum scene length of one second at 24 fps
  scenecut --threshold 1500,70 --min-scene-len 24 movie.mkv`,
	Version:       appVersion,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runDetect,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "write results to a file instead of stdout")
	rootCmd.Flags().StringVarP(&flagFormat, "format", "f", string(format.DefaultFormat), "output format (json, csv, aegisub, timecode)")
	rootCmd.Flags().StringVarP(&flagSensitivity, "sensitivity", "s", "medium", "detection sensitivity (low, medium, high)")
	rootCmd.Flags().StringVar(&flagSearchRange, "search-range", "auto", "motion search range (auto, small, medium, large)")
	rootCmd.Flags().StringVar(&flagThreshold, "threshold", "", "custom thresholds as <intra-sad>,<cut-density>")
	rootCmd.Flags().IntVar(&flagMinSceneLen, "min-scene-len", 0, "drop cuts closer than N frames to the previous one")
	rootCmd.Flags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress terminal output")
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose logging")
}

func runDetect(_ *cobra.Command, args []string) error {
	level := logging.LevelInfo
	if flagVerbose {
		level = logging.LevelDebug
	}
	if flagQuiet {
		level = logging.LevelError
	}
	logging.Init(level, os.Stderr)

	inputPath, err := filepath.Abs(args[0])
	if err != nil {
		return errors.NewPathError(fmt.Sprintf("invalid input path: %s", args[0]))
	}

	outputFormat, err := format.ParseFormat(flagFormat)
	if err != nil {
		return err
	}

	opts, err := detectorOptions()
	if err != nil {
		return err
	}

	detector, err := scenecut.New(opts...)
	if err != nil {
		return err
	}

	var rep reporter.Reporter = reporter.NullReporter{}
	if !flagQuiet {
		rep = reporter.NewTerminalReporter()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	result, err := detector.DetectWithReporter(ctx, inputPath, rep)
	if err != nil {
		return err
	}

	return writeResult(result, outputFormat)
}

// detectorOptions translates the CLI flags into detector options.
func detectorOptions() ([]scenecut.Option, error) {
	var opts []scenecut.Option

	if flagThreshold != "" {
		intraSAD, cutDensity, err := parseThreshold(flagThreshold)
		if err != nil {
			return nil, err
		}
		opts = append(opts, scenecut.WithCustomThresholds(intraSAD, cutDensity))
	} else {
		sensitivity, err := scenecut.ParseSensitivity(flagSensitivity)
		if err != nil {
			return nil, err
		}
		opts = append(opts, scenecut.WithSensitivity(sensitivity))
	}

	searchRange, err := scenecut.ParseSearchRange(flagSearchRange)
	if err != nil {
		return nil, err
	}
	opts = append(opts, scenecut.WithSearchRange(searchRange))

	if flagMinSceneLen > 0 {
		opts = append(opts, scenecut.WithMinSceneLen(flagMinSceneLen))
	}

	return opts, nil
}

// parseThreshold parses the "<intra-sad>,<cut-density>" flag value.
func parseThreshold(s string) (uint32, uint32, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, errors.NewConfigError(fmt.Sprintf("invalid threshold %q, expected <intra-sad>,<cut-density>", s))
	}
	intraSAD, err := strconv.ParseUint(strings.TrimSpace(parts[0]), 10, 32)
	if err != nil {
		return 0, 0, errors.NewConfigError(fmt.Sprintf("invalid intra-sad threshold %q", parts[0]))
	}
	cutDensity, err := strconv.ParseUint(strings.TrimSpace(parts[1]), 10, 32)
	if err != nil {
		return 0, 0, errors.NewConfigError(fmt.Sprintf("invalid cut-density threshold %q", parts[1]))
	}
	return uint32(intraSAD), uint32(cutDensity), nil
}

// writeResult renders the cut list to stdout or the requested output file.
func writeResult(result *scenecut.Result, outputFormat format.Format) error {
	if flagOutput == "" {
		return format.Write(os.Stdout, result.Scenes, result.Metadata, outputFormat)
	}

	outputPath, err := filepath.Abs(flagOutput)
	if err != nil {
		return errors.NewPathError(fmt.Sprintf("invalid output path: %s", flagOutput))
	}
	if err := util.EnsureDirectory(filepath.Dir(outputPath)); err != nil {
		return errors.NewIOError("failed to create output directory", err)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return errors.NewIOError(fmt.Sprintf("failed to create %s", outputPath), err)
	}
	defer func() { _ = f.Close() }()

	if err := format.Write(f, result.Scenes, result.Metadata, outputFormat); err != nil {
		return err
	}

	logging.Info("results written", "path", outputPath, "format", outputFormat, "scenes", len(result.Scenes))
	return nil
}

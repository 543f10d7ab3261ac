// Package scenecut provides a Go library for scene-change detection in
// video files.
//
// Scenecut decodes a video to grayscale frames through FFmpeg and runs a
// block-based motion-estimation analysis over consecutive frames: blocks
// that cannot be predicted from the previous frame mark visual novelty, and
// frames where enough blocks are novel are reported as scene boundaries.
//
// Basic usage:
//
//	detector, err := scenecut.New(
//	    scenecut.WithSensitivity(scenecut.SensitivityHigh),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := detector.Detect(ctx, "input.mkv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, scene := range result.Scenes {
//	    fmt.Printf("%d\t%s\n", scene.FrameNumber, scene.Timecode)
//	}
package scenecut

import (
	"context"
	"time"

	"github.com/doedja/scenecut/internal/config"
	"github.com/doedja/scenecut/internal/detect"
	"github.com/doedja/scenecut/internal/ffprobe"
	"github.com/doedja/scenecut/internal/processing"
	"github.com/doedja/scenecut/internal/reporter"
)

// Re-export configuration types
type (
	Sensitivity = config.Sensitivity
	SearchRange = config.SearchRange
	Thresholds  = config.Thresholds
	Scene       = detect.Scene
	Metadata    = ffprobe.Metadata
)

const (
	SensitivityLow    = config.SensitivityLow
	SensitivityMedium = config.SensitivityMedium
	SensitivityHigh   = config.SensitivityHigh

	SearchRangeAuto   = config.SearchRangeAuto
	SearchRangeSmall  = config.SearchRangeSmall
	SearchRangeMedium = config.SearchRangeMedium
	SearchRangeLarge  = config.SearchRangeLarge
)

// ParseSensitivity converts a sensitivity string to a Sensitivity value.
// Valid values are "low", "medium", "high" and "custom" (case-insensitive).
func ParseSensitivity(s string) (Sensitivity, error) {
	return config.ParseSensitivity(s)
}

// ParseSearchRange converts a search range string to a SearchRange value.
// Valid values are "auto", "small", "medium" and "large" (case-insensitive).
func ParseSearchRange(s string) (SearchRange, error) {
	return config.ParseSearchRange(s)
}

// Progress describes detection progress for the progress callback.
type Progress struct {
	CurrentFrame uint64
	TotalFrames  uint64
	Percent      float32
	ETASeconds   int64
}

// Result contains the outcome of one detection run.
type Result struct {
	Scenes   []Scene
	Metadata *Metadata
	Elapsed  time.Duration
}

// Detector is the main entry point for scene-change detection.
type Detector struct {
	config     *config.Config
	onProgress func(Progress)
	onScene    func(Scene)
}

// Option configures the detector.
type Option func(*Detector)

// New creates a new Detector with the given options.
func New(opts ...Option) (*Detector, error) {
	d := &Detector{config: config.NewConfig("")}

	for _, opt := range opts {
		opt(d)
	}

	if err := d.config.Validate(); err != nil {
		return nil, err
	}

	return d, nil
}

// WithSensitivity selects a built-in sensitivity level.
func WithSensitivity(s Sensitivity) Option {
	return func(d *Detector) {
		d.config.Sensitivity = s
	}
}

// WithCustomThresholds overrides the built-in threshold pairs and implies
// custom sensitivity.
func WithCustomThresholds(intraSAD, cutDensity uint32) Option {
	return func(d *Detector) {
		d.config.Sensitivity = config.SensitivityCustom
		d.config.CustomThresholds = &config.Thresholds{IntraSAD: intraSAD, CutDensity: cutDensity}
	}
}

// WithSearchRange selects the motion search window size.
func WithSearchRange(r SearchRange) Option {
	return func(d *Detector) {
		d.config.SearchRange = r
	}
}

// WithMinSceneLen drops detected cuts closer than the given number of
// frames to the previous kept cut. Zero disables the filter.
func WithMinSceneLen(frames int) Option {
	return func(d *Detector) {
		d.config.MinSceneLen = frames
	}
}

// WithProgressFunc registers a callback invoked with rate-limited progress
// updates during detection.
func WithProgressFunc(fn func(Progress)) Option {
	return func(d *Detector) {
		d.onProgress = fn
	}
}

// WithSceneFunc registers a callback invoked synchronously for each
// detected scene boundary, before the next frame is analyzed.
func WithSceneFunc(fn func(Scene)) Option {
	return func(d *Detector) {
		d.onScene = fn
	}
}

// Detect analyzes the video at path and returns the detected scene
// boundaries in frame order.
func (d *Detector) Detect(ctx context.Context, path string) (*Result, error) {
	cfg := *d.config
	cfg.InputPath = path

	cb := processing.Callbacks{OnScene: d.onScene}
	if d.onProgress != nil {
		cb.OnProgress = func(s reporter.ProgressSnapshot) {
			d.onProgress(Progress{
				CurrentFrame: s.CurrentFrame,
				TotalFrames:  s.TotalFrames,
				Percent:      s.Percent,
				ETASeconds:   int64(s.ETA.Seconds()),
			})
		}
	}

	res, err := processing.Run(ctx, &cfg, reporter.NullReporter{}, cb)
	if err != nil {
		return nil, err
	}

	return &Result{Scenes: res.Scenes, Metadata: res.Metadata, Elapsed: res.Elapsed}, nil
}

// DetectWithReporter analyzes the video at path, emitting progress and
// results through the given Reporter. This is the entry point the CLI uses.
func (d *Detector) DetectWithReporter(ctx context.Context, path string, rep reporter.Reporter) (*Result, error) {
	cfg := *d.config
	cfg.InputPath = path

	res, err := processing.Run(ctx, &cfg, rep, processing.Callbacks{OnScene: d.onScene})
	if err != nil {
		return nil, err
	}

	return &Result{Scenes: res.Scenes, Metadata: res.Metadata, Elapsed: res.Elapsed}, nil
}

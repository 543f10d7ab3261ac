// Package processing orchestrates the detection pipeline for one video:
// probe, decode, per-frame detection, and progress reporting.
package processing

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/doedja/scenecut/internal/config"
	"github.com/doedja/scenecut/internal/decode"
	"github.com/doedja/scenecut/internal/detect"
	"github.com/doedja/scenecut/internal/errors"
	"github.com/doedja/scenecut/internal/ffprobe"
	"github.com/doedja/scenecut/internal/logging"
	"github.com/doedja/scenecut/internal/reporter"
	"github.com/doedja/scenecut/internal/util"
)

// progressInterval rate-limits progress callbacks.
const progressInterval = 200 * time.Millisecond

// Callbacks are optional per-event hooks invoked synchronously from the
// detection loop.
type Callbacks struct {
	OnProgress func(reporter.ProgressSnapshot)
	OnScene    func(detect.Scene)
}

// Result contains the outcome of one detection run.
type Result struct {
	Scenes   []detect.Scene
	Metadata *ffprobe.Metadata
	Elapsed  time.Duration
}

// Run detects scene changes in the configured input file.
func Run(ctx context.Context, cfg *config.Config, rep reporter.Reporter, cb Callbacks) (*Result, error) {
	if rep == nil {
		rep = reporter.NullReporter{}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !util.IsRegularFile(cfg.InputPath) {
		return nil, errors.NewPathError(fmt.Sprintf("input file does not exist: %s", cfg.InputPath))
	}

	meta, err := ffprobe.Probe(cfg.InputPath)
	if err != nil {
		rep.Error(reporter.ReporterError{
			Title:      "Analysis Error",
			Message:    fmt.Sprintf("Could not analyze %s: %v", util.GetFilename(cfg.InputPath), err),
			Suggestion: "Check that the file is a valid video and ffprobe is installed",
		})
		return nil, err
	}

	rep.VideoInfo(reporter.VideoSummary{
		InputFile:   util.GetFilename(cfg.InputPath),
		Duration:    util.FormatDuration(meta.Duration),
		Resolution:  fmt.Sprintf("%dx%d", meta.Width, meta.Height),
		FPS:         meta.FPS(),
		TotalFrames: meta.TotalFrames,
		Sensitivity: string(cfg.Sensitivity),
		SearchRange: string(cfg.SearchRange),
	})

	logging.Info("starting detection",
		"input", cfg.InputPath,
		"resolution", fmt.Sprintf("%dx%d", meta.Width, meta.Height),
		"frames", meta.TotalFrames,
		"sensitivity", cfg.Sensitivity,
		"fcode", config.Fcode(cfg.SearchRange, meta.Width, meta.Height))

	dec, err := decode.Open(ctx, cfg.InputPath, meta)
	if err != nil {
		return nil, err
	}
	defer func() { _ = dec.Close() }()

	det := detect.NewDetector(cfg.Thresholds(), cfg.SearchRange)
	rep.DetectionStarted(meta.TotalFrames)

	start := time.Now()
	var lastProgress time.Time

	for {
		frame, err := dec.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			rep.Error(reporter.ReporterError{
				Title:   "Decoder Error",
				Message: err.Error(),
			})
			return nil, err
		}

		scene, err := det.ProcessFrame(frame)
		if err != nil {
			return nil, errors.NewDecoderError(fmt.Sprintf("frame %d rejected", frame.Number), err)
		}
		if scene != nil {
			rep.SceneFound(reporter.SceneEvent{
				FrameNumber: scene.FrameNumber,
				Timestamp:   scene.Timestamp,
				Timecode:    scene.Timecode,
			})
			if cb.OnScene != nil {
				cb.OnScene(*scene)
			}
		}

		if now := time.Now(); now.Sub(lastProgress) >= progressInterval {
			lastProgress = now
			snapshot := progressSnapshot(uint64(frame.Number+1), meta.TotalFrames, now.Sub(start))
			rep.Progress(snapshot)
			if cb.OnProgress != nil {
				cb.OnProgress(snapshot)
			}
		}
	}

	elapsed := time.Since(start)
	frames := uint64(dec.FramesDelivered())

	scenes := det.Scenes()
	if cfg.MinSceneLen > 0 {
		before := len(scenes)
		scenes = FilterShortScenes(scenes, cfg.MinSceneLen)
		if dropped := before - len(scenes); dropped > 0 {
			logging.Debug("temporal smoothing dropped cuts", "dropped", dropped, "min_scene_len", cfg.MinSceneLen)
		}
	}

	analysisFPS := float32(0)
	if elapsed > 0 {
		analysisFPS = float32(float64(frames) / elapsed.Seconds())
	}
	rep.DetectionComplete(reporter.Summary{
		SceneCount:     len(scenes),
		FramesAnalyzed: frames,
		TotalTime:      elapsed,
		AnalysisFPS:    analysisFPS,
	})

	logging.Info("detection complete", "scenes", len(scenes), "frames", frames, "elapsed", elapsed)

	return &Result{Scenes: scenes, Metadata: meta, Elapsed: elapsed}, nil
}

// progressSnapshot derives percent, throughput and ETA for a progress event.
func progressSnapshot(current, total uint64, elapsed time.Duration) reporter.ProgressSnapshot {
	snapshot := reporter.ProgressSnapshot{
		CurrentFrame: current,
		TotalFrames:  total,
	}
	if elapsed > 0 {
		snapshot.FPS = float32(float64(current) / elapsed.Seconds())
	}
	if total > 0 {
		snapshot.Percent = float32(float64(current) / float64(total) * 100)
		if snapshot.FPS > 0 && current < total {
			remaining := float64(total-current) / float64(snapshot.FPS)
			snapshot.ETA = time.Duration(remaining * float64(time.Second))
		}
	}
	return snapshot
}

// FilterShortScenes drops any cut that follows the previous kept cut by
// fewer than minFrames frames. The initial scene is always kept.
func FilterShortScenes(scenes []detect.Scene, minFrames int) []detect.Scene {
	if len(scenes) <= 1 || minFrames <= 0 {
		return scenes
	}

	result := make([]detect.Scene, 0, len(scenes))
	result = append(result, scenes[0])
	for _, s := range scenes[1:] {
		if s.FrameNumber-result[len(result)-1].FrameNumber >= minFrames {
			result = append(result, s)
		}
	}
	return result
}

// Package format renders detection results in the supported output formats.
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/doedja/scenecut/internal/detect"
	"github.com/doedja/scenecut/internal/errors"
	"github.com/doedja/scenecut/internal/ffprobe"
)

// Format identifies an output format.
type Format string

const (
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatAegisub  Format = "aegisub"
	FormatTimecode Format = "timecode"
)

// DefaultFormat is used when no format is requested.
const DefaultFormat = FormatJSON

// ParseFormat parses a string into a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "aegisub":
		return FormatAegisub, nil
	case "timecode":
		return FormatTimecode, nil
	default:
		return "", errors.NewConfigError(fmt.Sprintf("invalid output format: %s (valid: json, csv, aegisub, timecode)", s))
	}
}

// Write renders the detected scenes to w in the given format.
func Write(w io.Writer, scenes []detect.Scene, meta *ffprobe.Metadata, f Format) error {
	switch f {
	case FormatJSON:
		return writeJSON(w, scenes, meta)
	case FormatCSV:
		return writeCSV(w, scenes)
	case FormatAegisub:
		return writeAegisub(w, scenes, meta)
	case FormatTimecode:
		return writeTimecode(w, scenes)
	default:
		return errors.NewConfigError(fmt.Sprintf("invalid output format: %s", f))
	}
}

type jsonMetadata struct {
	TotalFrames uint64  `json:"total_frames"`
	Duration    float64 `json:"duration"`
	FPS         float64 `json:"fps"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
}

type jsonResult struct {
	Scenes   []detect.Scene `json:"scenes"`
	Metadata jsonMetadata   `json:"metadata"`
}

func writeJSON(w io.Writer, scenes []detect.Scene, meta *ffprobe.Metadata) error {
	result := jsonResult{
		Scenes: scenes,
		Metadata: jsonMetadata{
			TotalFrames: meta.TotalFrames,
			Duration:    meta.Duration,
			FPS:         meta.FPS(),
			Width:       meta.Width,
			Height:      meta.Height,
		},
	}
	if result.Scenes == nil {
		result.Scenes = []detect.Scene{}
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return errors.NewJSONParseError("failed to encode result", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func writeCSV(w io.Writer, scenes []detect.Scene) error {
	if _, err := fmt.Fprintln(w, "frame,timestamp,timecode"); err != nil {
		return err
	}
	for _, s := range scenes {
		if _, err := fmt.Fprintf(w, "%d,%.6f,%s\n", s.FrameNumber, s.Timestamp, s.Timecode); err != nil {
			return err
		}
	}
	return nil
}

func writeAegisub(w io.Writer, scenes []detect.Scene, meta *ffprobe.Metadata) error {
	if _, err := fmt.Fprintf(w, "# keyframe format v1\nfps %g\n", meta.FPS()); err != nil {
		return err
	}
	for _, s := range scenes {
		if _, err := fmt.Fprintf(w, "%d\n", s.FrameNumber); err != nil {
			return err
		}
	}
	return nil
}

func writeTimecode(w io.Writer, scenes []detect.Scene) error {
	for _, s := range scenes {
		if _, err := fmt.Fprintln(w, s.Timecode); err != nil {
			return err
		}
	}
	return nil
}

// Package ffprobe provides functions for extracting media information using ffprobe.
package ffprobe

import (
	"encoding/json"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"

	"github.com/doedja/scenecut/internal/errors"
)

// Metadata contains the video stream properties needed for detection.
type Metadata struct {
	Width       int
	Height      int
	Duration    float64
	TotalFrames uint64
	FPSNum      uint32
	FPSDen      uint32
}

// FPS returns the frame rate as a float.
func (m *Metadata) FPS() float64 {
	if m.FPSDen == 0 {
		return 0
	}
	return float64(m.FPSNum) / float64(m.FPSDen)
}

// ffprobeOutput represents the JSON output from ffprobe.
type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	Duration string `json:"duration"`
}

type ffprobeStream struct {
	CodecType    string `json:"codec_type"`
	Width        int64  `json:"width"`
	Height       int64  `json:"height"`
	NbFrames     string `json:"nb_frames"`
	RFrameRate   string `json:"r_frame_rate"`
	AvgFrameRate string `json:"avg_frame_rate"`
	Duration     string `json:"duration"`
}

// runFFprobe executes ffprobe and returns the parsed output.
func runFFprobe(inputPath string) (*ffprobeOutput, error) {
	cmd := exec.Command("ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		inputPath,
	)

	output, err := cmd.Output()
	if err != nil {
		return nil, errors.WrapExecError("ffprobe", err, "")
	}

	var result ffprobeOutput
	if err := json.Unmarshal(output, &result); err != nil {
		return nil, errors.NewJSONParseError("failed to parse ffprobe output", err)
	}

	return &result, nil
}

// Probe returns the video metadata for a file.
func Probe(inputPath string) (*Metadata, error) {
	probe, err := runFFprobe(inputPath)
	if err != nil {
		return nil, err
	}
	return metadataFromProbe(probe)
}

// metadataFromProbe extracts detection metadata from parsed ffprobe output.
func metadataFromProbe(probe *ffprobeOutput) (*Metadata, error) {
	var video *ffprobeStream
	for i := range probe.Streams {
		if probe.Streams[i].CodecType == "video" {
			video = &probe.Streams[i]
			break
		}
	}
	if video == nil {
		return nil, errors.NewFFprobeParseError("no video stream found")
	}

	if video.Width <= 0 || video.Height <= 0 {
		return nil, errors.NewFFprobeParseError(fmt.Sprintf("invalid video dimensions %dx%d", video.Width, video.Height))
	}

	meta := &Metadata{
		Width:  int(video.Width),
		Height: int(video.Height),
	}

	num, den, ok := parseRational(video.RFrameRate)
	if !ok || num == 0 {
		num, den, ok = parseRational(video.AvgFrameRate)
	}
	if !ok || num == 0 || den == 0 {
		return nil, errors.NewFFprobeParseError(fmt.Sprintf("invalid frame rate %q", video.RFrameRate))
	}
	meta.FPSNum = num
	meta.FPSDen = den

	// Prefer the stream duration; fall back to the container duration.
	if d, err := strconv.ParseFloat(video.Duration, 64); err == nil && d > 0 {
		meta.Duration = d
	} else if d, err := strconv.ParseFloat(probe.Format.Duration, 64); err == nil && d > 0 {
		meta.Duration = d
	}

	// Some containers do not carry nb_frames; estimate it from duration.
	if video.NbFrames != "" {
		if frames, err := strconv.ParseUint(video.NbFrames, 10, 64); err == nil {
			meta.TotalFrames = frames
		}
	}
	if meta.TotalFrames == 0 && meta.Duration > 0 {
		meta.TotalFrames = uint64(math.Round(meta.Duration * meta.FPS()))
	}

	return meta, nil
}

// parseRational parses an ffprobe rational like "30000/1001" or "24".
func parseRational(s string) (num, den uint32, ok bool) {
	if s == "" {
		return 0, 0, false
	}
	parts := strings.SplitN(s, "/", 2)

	n, err := strconv.ParseUint(parts[0], 10, 32)
	if err != nil {
		return 0, 0, false
	}
	d := uint64(1)
	if len(parts) == 2 {
		d, err = strconv.ParseUint(parts[1], 10, 32)
		if err != nil {
			return 0, 0, false
		}
	}
	if d == 0 {
		return 0, 0, false
	}
	return uint32(n), uint32(d), true
}

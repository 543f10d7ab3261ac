package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doedja/scenecut/internal/detect"
	"github.com/doedja/scenecut/internal/ffprobe"
)

func testScenes() []detect.Scene {
	return []detect.Scene{
		{FrameNumber: 0, Timestamp: 0, Timecode: "00:00:00.000"},
		{FrameNumber: 50, Timestamp: 2.0833333, Timecode: "00:00:02.083"},
		{FrameNumber: 120, Timestamp: 5, Timecode: "00:00:05.000"},
	}
}

func testMeta() *ffprobe.Metadata {
	return &ffprobe.Metadata{
		Width:       1920,
		Height:      1080,
		Duration:    10,
		TotalFrames: 240,
		FPSNum:      24,
		FPSDen:      1,
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"csv", FormatCSV, false},
		{"aegisub", FormatAegisub, false},
		{"timecode", FormatTimecode, false},
		{"JSON", FormatJSON, false},
		{"xml", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.input)
		if tt.wantErr {
			assert.Errorf(t, err, "ParseFormat(%q)", tt.input)
			continue
		}
		require.NoErrorf(t, err, "ParseFormat(%q)", tt.input)
		assert.Equal(t, tt.want, got)
	}
}

func TestWriteTimecode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testScenes(), testMeta(), FormatTimecode))

	want := "00:00:00.000\n00:00:02.083\n00:00:05.000\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testScenes(), testMeta(), FormatCSV))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "frame,timestamp,timecode", lines[0])
	assert.Equal(t, "0,0.000000,00:00:00.000", lines[1])
	assert.Equal(t, "50,2.083333,00:00:02.083", lines[2])
	assert.Equal(t, "120,5.000000,00:00:05.000", lines[3])
}

func TestWriteAegisub(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testScenes(), testMeta(), FormatAegisub))

	want := "# keyframe format v1\nfps 24\n0\n50\n120\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testScenes(), testMeta(), FormatJSON))

	var decoded struct {
		Scenes []struct {
			Frame     int     `json:"frame"`
			Timestamp float64 `json:"timestamp"`
			Timecode  string  `json:"timecode"`
		} `json:"scenes"`
		Metadata struct {
			TotalFrames uint64  `json:"total_frames"`
			Duration    float64 `json:"duration"`
			FPS         float64 `json:"fps"`
			Width       int     `json:"width"`
			Height      int     `json:"height"`
		} `json:"metadata"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	require.Len(t, decoded.Scenes, 3)
	assert.Equal(t, 50, decoded.Scenes[1].Frame)
	assert.Equal(t, "00:00:02.083", decoded.Scenes[1].Timecode)
	assert.Equal(t, uint64(240), decoded.Metadata.TotalFrames)
	assert.Equal(t, 24.0, decoded.Metadata.FPS)
	assert.Equal(t, 1920, decoded.Metadata.Width)

	// Pretty-printed output.
	assert.True(t, strings.HasPrefix(buf.String(), "{\n  "))
}

func TestWriteJSONEmptyScenes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, nil, testMeta(), FormatJSON))
	assert.Contains(t, buf.String(), `"scenes": []`)
}

func TestWriteInvalidFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Write(&buf, testScenes(), testMeta(), Format("xml")))
}

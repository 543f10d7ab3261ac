package detect

import (
	"fmt"

	"github.com/doedja/scenecut/internal/config"
	"github.com/doedja/scenecut/internal/errors"
	"github.com/doedja/scenecut/internal/logging"
	"github.com/doedja/scenecut/internal/util"
)

// Frame is a single decoded luma plane handed to the detector. Data is
// borrowed only for the duration of the ProcessFrame call; the detector
// copies it into its own padded working buffer.
type Frame struct {
	Data   []byte
	Width  int
	Height int
	PTS    float64
	Number int
}

// Scene identifies one detected scene boundary.
type Scene struct {
	FrameNumber int     `json:"frame"`
	Timestamp   float64 `json:"timestamp"`
	Timecode    string  `json:"timecode"`
}

// Detector maintains the cross-frame state of the scene-change pipeline:
// two padded planes swapped each frame, the reusable macroblock array, and
// the frames-since-last-cut counter. It is not safe for concurrent use.
type Detector struct {
	thresholds  config.Thresholds
	searchRange config.SearchRange

	param    MBParam
	prev     []byte
	cur      []byte
	mbs      []Macroblock
	havePrev bool
	fcode    int

	intraCount      int
	scenes          []Scene
	lastStats       FrameStats
	resChangeLogged bool
}

// NewDetector creates a detector. Working buffers are sized lazily from the
// first frame.
func NewDetector(thresholds config.Thresholds, searchRange config.SearchRange) *Detector {
	return &Detector{
		thresholds:  thresholds,
		searchRange: searchRange,
		intraCount:  1,
	}
}

// ProcessFrame feeds the next frame of the stream to the detector. Frames
// must arrive in order. It returns a non-nil Scene when the frame starts a
// new scene (the first frame of a stream always does).
func (d *Detector) ProcessFrame(f *Frame) (*Scene, error) {
	if f.Width < 1 || f.Height < 1 || f.Width > config.MaxDimension || f.Height > config.MaxDimension {
		return nil, errors.NewInvalidFrameError(fmt.Sprintf("frame %d: dimensions %dx%d out of range", f.Number, f.Width, f.Height))
	}
	if len(f.Data) < f.Width*f.Height {
		return nil, errors.NewInvalidFrameError(fmt.Sprintf("frame %d: plane has %d bytes, need %d", f.Number, len(f.Data), f.Width*f.Height))
	}

	if d.param.Width != f.Width || d.param.Height != f.Height {
		if d.cur != nil && !d.resChangeLogged {
			logging.Warn("resolution changed mid-stream, rebuilding analysis buffers",
				"frame", f.Number, "width", f.Width, "height", f.Height)
			d.resChangeLogged = true
		}
		d.alloc(f.Width, f.Height)
	}

	PadPlane(d.cur, f.Data, d.param)

	var scene *Scene
	if !d.havePrev {
		// No reference to compare against: the first frame of the stream,
		// and the first frame after a resolution change, start a scene.
		scene = d.recordCut(f)
		d.havePrev = true
	} else {
		stats := classifyFrame(d.cur, d.prev, d.param, d.mbs, d.fcode, d.thresholds.IntraSAD)
		d.lastStats = stats
		if isCut(stats, d.param, d.intraCount, d.thresholds) {
			scene = d.recordCut(f)
		} else {
			d.intraCount++
		}
	}

	d.prev, d.cur = d.cur, d.prev
	return scene, nil
}

func (d *Detector) recordCut(f *Frame) *Scene {
	d.scenes = append(d.scenes, Scene{
		FrameNumber: f.Number,
		Timestamp:   f.PTS,
		Timecode:    util.FormatTimecode(f.PTS),
	})
	d.intraCount = 1
	return &d.scenes[len(d.scenes)-1]
}

func (d *Detector) alloc(width, height int) {
	d.param = NewMBParam(width, height)
	d.prev = make([]byte, d.param.PlaneSize())
	d.cur = make([]byte, d.param.PlaneSize())
	d.mbs = make([]Macroblock, d.param.Blocks())
	d.havePrev = false
	d.fcode = config.Fcode(d.searchRange, width, height)
}

// Scenes returns the scene boundaries detected so far, in frame order.
func (d *Detector) Scenes() []Scene {
	return d.scenes
}

// Fcode returns the motion search range parameter in effect, or zero before
// the first frame.
func (d *Detector) Fcode() int {
	return d.fcode
}

// LastStats returns the classification statistics of the most recently
// compared frame pair.
func (d *Detector) LastStats() FrameStats {
	return d.lastStats
}

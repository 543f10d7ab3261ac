// Package decode streams decoded grayscale frames from an ffmpeg child
// process.
package decode

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/doedja/scenecut/internal/detect"
	"github.com/doedja/scenecut/internal/errors"
	"github.com/doedja/scenecut/internal/ffprobe"
	"github.com/doedja/scenecut/internal/logging"
)

// stdoutBufferSize is the read buffer in front of the ffmpeg pipe.
const stdoutBufferSize = 1 << 20

// BuildArgs returns the ffmpeg arguments that decode the first video
// stream of inputPath to a raw 8-bit luma pipe on stdout.
func BuildArgs(inputPath string) []string {
	return []string{
		"-hide_banner",
		"-v", "error",
		"-i", inputPath,
		"-map", "0:v:0",
		"-f", "rawvideo",
		"-pix_fmt", "gray",
		"-",
	}
}

// Decoder pulls decoded luma planes from ffmpeg in decode order. The frame
// returned by Next borrows a buffer that is reused on the following call.
type Decoder struct {
	ctx    context.Context
	cmd    *exec.Cmd
	stdout *bufio.Reader
	stderr strings.Builder
	meta   *ffprobe.Metadata
	buf    []byte
	frame  detect.Frame
	next   int
	waited bool
	done   bool
}

// Open spawns ffmpeg for inputPath and prepares frame delivery. The
// metadata must come from a prior probe of the same file; it fixes the
// frame geometry of the raw pipe.
func Open(ctx context.Context, inputPath string, meta *ffprobe.Metadata) (*Decoder, error) {
	cmd := exec.CommandContext(ctx, "ffmpeg", BuildArgs(inputPath)...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, errors.NewIOError("failed to create stdout pipe", err)
	}

	d := &Decoder{
		ctx:    ctx,
		cmd:    cmd,
		stdout: bufio.NewReaderSize(stdout, stdoutBufferSize),
		meta:   meta,
		buf:    make([]byte, meta.Width*meta.Height),
	}
	cmd.Stderr = &d.stderr

	if err := cmd.Start(); err != nil {
		return nil, errors.NewCommandStartError("ffmpeg", err)
	}

	logging.Debug("decoder started", "input", inputPath, "width", meta.Width, "height", meta.Height)
	return d, nil
}

// Next returns the next decoded frame, or io.EOF once the stream ends.
// The frame's Data is only valid until the following Next call.
func (d *Decoder) Next() (*detect.Frame, error) {
	if d.done {
		return nil, io.EOF
	}
	if err := d.ctx.Err(); err != nil {
		d.done = true
		_ = d.kill()
		return nil, errors.NewCancelledError()
	}

	_, err := io.ReadFull(d.stdout, d.buf)
	switch err {
	case nil:
	case io.EOF:
		d.done = true
		if werr := d.wait(); werr != nil {
			if d.ctx.Err() != nil {
				return nil, errors.NewCancelledError()
			}
			return nil, errors.NewDecoderError(fmt.Sprintf("ffmpeg exited abnormally: %s", d.stderrTail()), werr)
		}
		return nil, io.EOF
	case io.ErrUnexpectedEOF:
		d.done = true
		_ = d.wait()
		if d.ctx.Err() != nil {
			return nil, errors.NewCancelledError()
		}
		return nil, errors.NewDecoderError(fmt.Sprintf("truncated frame %d: %s", d.next, d.stderrTail()), err)
	default:
		d.done = true
		_ = d.kill()
		return nil, errors.NewDecoderError(fmt.Sprintf("failed to read frame %d", d.next), err)
	}

	d.frame = detect.Frame{
		Data:   d.buf,
		Width:  d.meta.Width,
		Height: d.meta.Height,
		PTS:    float64(d.next) * float64(d.meta.FPSDen) / float64(d.meta.FPSNum),
		Number: d.next,
	}
	d.next++
	return &d.frame, nil
}

// FramesDelivered returns the number of frames handed out so far.
func (d *Decoder) FramesDelivered() int {
	return d.next
}

// Close terminates the decoder. It is safe to call after Next returned an
// error or io.EOF.
func (d *Decoder) Close() error {
	d.done = true
	return d.kill()
}

func (d *Decoder) wait() error {
	if d.waited {
		return nil
	}
	d.waited = true
	return d.cmd.Wait()
}

func (d *Decoder) kill() error {
	if d.waited {
		return nil
	}
	if d.cmd.Process != nil {
		_ = d.cmd.Process.Kill()
	}
	d.waited = true
	return d.cmd.Wait()
}

// stderrTail returns the last line of captured ffmpeg stderr output.
func (d *Decoder) stderrTail() string {
	s := strings.TrimSpace(d.stderr.String())
	if s == "" {
		return "no error output"
	}
	if idx := strings.LastIndexByte(s, '\n'); idx >= 0 {
		s = s[idx+1:]
	}
	return s
}

package reporter

import (
	"fmt"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/doedja/scenecut/internal/util"
)

// TerminalReporter outputs human-friendly text to the terminal.
type TerminalReporter struct {
	mu         sync.Mutex
	progress   *progressbar.ProgressBar
	maxPercent float32
	cyan       *color.Color
	green      *color.Color
	yellow     *color.Color
	red        *color.Color
	magenta    *color.Color
	bold       *color.Color
}

// NewTerminalReporter creates a new terminal reporter.
func NewTerminalReporter() *TerminalReporter {
	return &TerminalReporter{
		cyan:    color.New(color.FgCyan, color.Bold),
		green:   color.New(color.FgGreen),
		yellow:  color.New(color.FgYellow, color.Bold),
		red:     color.New(color.FgRed, color.Bold),
		magenta: color.New(color.FgMagenta),
		bold:    color.New(color.Bold),
	}
}

func (r *TerminalReporter) finishProgress() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.progress != nil {
		_ = r.progress.Finish()
		r.progress = nil
	}
	r.maxPercent = 0
}

// printLabel prints a bold label with fixed width padding followed by a value.
// Width is applied to the plain text before styling to ensure proper alignment.
func (r *TerminalReporter) printLabel(width int, label, value string) {
	paddedLabel := fmt.Sprintf("%-*s", width, label)
	fmt.Printf("  %s %s\n", r.bold.Sprint(paddedLabel), value)
}

func (r *TerminalReporter) VideoInfo(summary VideoSummary) {
	fmt.Println()
	_, _ = r.cyan.Println("VIDEO")
	const w = 12
	r.printLabel(w, "File:", summary.InputFile)
	r.printLabel(w, "Duration:", summary.Duration)
	r.printLabel(w, "Resolution:", summary.Resolution)
	r.printLabel(w, "Frame rate:", fmt.Sprintf("%.3f fps", summary.FPS))
	r.printLabel(w, "Frames:", fmt.Sprintf("%d", summary.TotalFrames))
	r.printLabel(w, "Sensitivity:", summary.Sensitivity)
	r.printLabel(w, "Search:", summary.SearchRange)
}

func (r *TerminalReporter) DetectionStarted(totalFrames uint64) {
	r.finishProgress()

	fmt.Println()
	_, _ = r.cyan.Println("DETECTION")

	r.mu.Lock()
	defer r.mu.Unlock()

	r.progress = progressbar.NewOptions64(
		100,
		progressbar.OptionSetDescription(""),
		progressbar.OptionSetWidth(40),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionShowDescriptionAtLineEnd(),
		progressbar.OptionSetElapsedTime(false),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "Analyzing [",
			BarEnd:        "]",
		}),
	)
}

func (r *TerminalReporter) Progress(snapshot ProgressSnapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.progress == nil {
		return
	}

	clamped := snapshot.Percent
	if clamped > 100 {
		clamped = 100
	}
	if clamped < 0 {
		clamped = 0
	}

	if clamped >= r.maxPercent {
		r.maxPercent = clamped
		_ = r.progress.Set64(int64(clamped))
	}

	desc := fmt.Sprintf("frame %d/%d, %.0f fps, eta %s",
		snapshot.CurrentFrame, snapshot.TotalFrames, snapshot.FPS,
		util.FormatDurationFromSecs(int64(snapshot.ETA.Seconds())))
	r.progress.Describe(desc)
}

func (r *TerminalReporter) SceneFound(scene SceneEvent) {
	r.mu.Lock()
	bar := r.progress
	r.mu.Unlock()
	if bar != nil {
		// Keep the progress bar line clean while it is active.
		return
	}
	fmt.Printf("  %s cut at frame %d (%s)\n", r.magenta.Sprint("›"), scene.FrameNumber, scene.Timecode)
}

func (r *TerminalReporter) DetectionComplete(summary Summary) {
	r.finishProgress()

	fmt.Println()
	_, _ = r.cyan.Println("RESULTS")
	fmt.Printf("  %s %s\n", r.bold.Sprint("Scenes:"), r.bold.Sprintf("%d", summary.SceneCount))
	fmt.Printf("  %s %d frames in %s (%.0f fps)\n",
		r.bold.Sprint("Analyzed:"),
		summary.FramesAnalyzed,
		util.FormatDurationFromSecs(int64(summary.TotalTime.Seconds())),
		summary.AnalysisFPS)
	if summary.OutputPath != "" {
		fmt.Printf("  %s %s\n", r.bold.Sprint("Saved to"), r.green.Sprint(summary.OutputPath))
	}
}

func (r *TerminalReporter) Warning(message string) {
	fmt.Println()
	_, _ = r.yellow.Printf("WARN: %s\n", message)
}

func (r *TerminalReporter) Error(err ReporterError) {
	_, _ = fmt.Fprintln(os.Stderr)
	_, _ = r.red.Fprintf(os.Stderr, "ERROR %s\n", err.Title)
	_, _ = fmt.Fprintf(os.Stderr, "  %s\n", err.Message)
	if err.Context != "" {
		_, _ = fmt.Fprintf(os.Stderr, "  Context: %s\n", err.Context)
	}
	if err.Suggestion != "" {
		_, _ = fmt.Fprintf(os.Stderr, "  Suggestion: %s\n", err.Suggestion)
	}
}

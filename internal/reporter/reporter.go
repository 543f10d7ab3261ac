package reporter

// Reporter defines the interface for progress reporting.
type Reporter interface {
	VideoInfo(summary VideoSummary)
	DetectionStarted(totalFrames uint64)
	Progress(snapshot ProgressSnapshot)
	SceneFound(scene SceneEvent)
	DetectionComplete(summary Summary)
	Warning(message string)
	Error(err ReporterError)
}

// NullReporter is a no-op reporter that discards all updates.
type NullReporter struct{}

func (NullReporter) VideoInfo(VideoSummary)    {}
func (NullReporter) DetectionStarted(uint64)   {}
func (NullReporter) Progress(ProgressSnapshot) {}
func (NullReporter) SceneFound(SceneEvent)     {}
func (NullReporter) DetectionComplete(Summary) {}
func (NullReporter) Warning(string)            {}
func (NullReporter) Error(ReporterError)       {}

package converter

// Sink receives notifications from the worker. Calls arrive on the worker
// goroutine, in processing order.
type Sink interface {
	OnProgress(processed, total int)
	OnFileFailed(outcome FileOutcome)
	OnCompleted(report Report)
}

// EventKind tags an Event.
type EventKind int

const (
	EventProgress EventKind = iota
	EventFileFailed
	EventCompleted
)

// Event is a value snapshot posted by ChanSink.
type Event struct {
	Kind      EventKind
	Processed int
	Total     int
	Outcome   FileOutcome
	Report    Report
}

// ChanSink forwards notifications onto a channel. The channel is never
// closed by the sink; the owner closes it after the run returns.
type ChanSink chan<- Event

func (c ChanSink) OnProgress(processed, total int) {
	c <- Event{Kind: EventProgress, Processed: processed, Total: total}
}

func (c ChanSink) OnFileFailed(outcome FileOutcome) {
	c <- Event{Kind: EventFileFailed, Outcome: outcome}
}

func (c ChanSink) OnCompleted(report Report) {
	c <- Event{Kind: EventCompleted, Report: report, Processed: report.TotalCandidates - report.Remaining, Total: report.TotalCandidates}
}

// SinkFuncs adapts optional callbacks to Sink.
type SinkFuncs struct {
	Progress   func(processed, total int)
	FileFailed func(outcome FileOutcome)
	Completed  func(report Report)
}

func (s SinkFuncs) OnProgress(processed, total int) {
	if s.Progress != nil {
		s.Progress(processed, total)
	}
}

func (s SinkFuncs) OnFileFailed(outcome FileOutcome) {
	if s.FileFailed != nil {
		s.FileFailed(outcome)
	}
}

func (s SinkFuncs) OnCompleted(report Report) {
	if s.Completed != nil {
		s.Completed(report)
	}
}

type nopSink struct{}

func (nopSink) OnProgress(int, int)      {}
func (nopSink) OnFileFailed(FileOutcome) {}
func (nopSink) OnCompleted(Report)       {}

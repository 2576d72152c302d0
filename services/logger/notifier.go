package logsvc

import "github.com/elimu-lms/elimu/core"

// LogNotifier renders user-visible notifications through a core.Logger.
// The web layer swaps in its own presentation; this keeps headless runs
// (and the demo binary) honest about what the user would have seen.
type LogNotifier struct {
	logger core.Logger
}

var _ core.Notifier = (*LogNotifier)(nil)

func NewLogNotifier(logger core.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n LogNotifier) Success(title, message string) {
	n.logger.Info(title + ": " + message)
}

func (n LogNotifier) Error(title, message string) {
	n.logger.Warn(title + ": " + message)
}

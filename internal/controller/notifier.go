package controller

import "log/slog"

// Notifier receives user-facing outcome messages from mutations, the CLI
// analog of the web frontend's toast notifications.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// slogNotifier routes notifications to a slog.Logger.
type slogNotifier struct {
	log *slog.Logger
}

// NewSlogNotifier returns a Notifier backed by log, or slog.Default when
// log is nil.
func NewSlogNotifier(log *slog.Logger) Notifier {
	if log == nil {
		log = slog.Default()
	}
	return &slogNotifier{log: log}
}

func (n *slogNotifier) Success(msg string) { n.log.Info(msg) }

func (n *slogNotifier) Error(msg string) { n.log.Warn(msg) }

package core

type (
	// Logger is any service that can log leveled messages.
	// Error reporting backends may attach extra context from args
	// (eg. the logged in session user).
	Logger interface {
		Debug(msg string, args ...interface{})
		Info(msg string, args ...interface{})
		Warn(msg string, args ...interface{})
		Error(msg string, args ...interface{})
		Fatal(msg string, args ...interface{})
	}

	// Notifier is the user-visible notification side channel. Core code only
	// emits through it; rendering the notification is a UI concern.
	Notifier interface {
		Success(title, message string)
		Error(title, message string)
	}
)

// NopNotifier discards all notifications.
type NopNotifier struct{}

var _ Notifier = (*NopNotifier)(nil)

func (NopNotifier) Success(title, message string) {}
func (NopNotifier) Error(title, message string)   {}

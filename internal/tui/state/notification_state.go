package state

// Level is the severity of a status line message
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

// NotificationState holds the single message shown in the status bar
type NotificationState struct {
	message string
	level   Level
}

// NewNotificationState creates an empty notification state
func NewNotificationState() *NotificationState {
	return &NotificationState{}
}

// Add replaces the current message
func (n *NotificationState) Add(level Level, message string) {
	n.level = level
	n.message = message
}

// Clear removes the current message
func (n *NotificationState) Clear() {
	n.message = ""
	n.level = LevelInfo
}

// Message returns the current message and its level
func (n *NotificationState) Message() (string, Level) {
	return n.message, n.level
}

// HasMessage reports whether there is anything to show
func (n *NotificationState) HasMessage() bool {
	return n.message != ""
}

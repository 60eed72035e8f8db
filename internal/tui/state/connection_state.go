package state

// ConnectionStatus describes the link to the event daemon
type ConnectionStatus int

const (
	Disconnected ConnectionStatus = iota
	Connected
)

func (s ConnectionStatus) String() string {
	if s == Connected {
		return "live"
	}
	return "offline"
}

package mines

type Outcome int8

const (
	Running Outcome = iota
	Won
	Lost
)

func (o Outcome) String() string {
	switch o {
	case Running:
		return "running"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

func (o Outcome) Over() bool {
	switch o {
	case Won, Lost:
		return true
	default:
		return false
	}
}

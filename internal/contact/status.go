package contact

// Kind is the submission lifecycle state.
type Kind int

const (
	Idle Kind = iota
	Submitting
	Success
	Error
)

// String returns the lowercase state name, as used in metric labels.
func (k Kind) String() string {
	switch k {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Status is the state the presentation layer renders. Message is only set
// for Success and Error.
type Status struct {
	Kind    Kind
	Message string
}

// IsTerminal reports whether s is the outcome of a finished submission.
func (s Status) IsTerminal() bool { return s.Kind == Success || s.Kind == Error }

func idle() Status { return Status{Kind: Idle} }
func submitting() Status { return Status{Kind: Submitting} }
func succeeded(msg string) Status { return Status{Kind: Success, Message: msg} }
func failed(msg string) Status { return Status{Kind: Error, Message: msg} }

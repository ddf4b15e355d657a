package errcode

// Code is a stable error identifier shared by firmware traces and host tools.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK               Code = "ok"
	Unsupported      Code = "unsupported"
	InvalidParams    Code = "invalid_params"
	InvalidFrequency Code = "invalid_frequency"
	NoLEDs           Code = "no_leds"
	UnknownBoard     Code = "unknown_board"
	UnknownPin       Code = "unknown_pin"
	DuplicatePin     Code = "duplicate_pin"
	NotIRQCapable    Code = "not_irq_capable"

	Error Code = "error" // generic fallback
)

// E wraps a Code with the failing operation and a cause.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	s := string(e.C)
	if e.Op != "" {
		s = e.Op + ": " + s
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	return s
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Wrap builds an *E; msg is optional detail.
func Wrap(c Code, op, msg string, cause error) error {
	return &E{C: c, Op: op, Msg: msg, Err: cause}
}

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return Error
}

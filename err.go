package caenhv

import (
	"fmt"
	"time"
	"unsafe"
)

// DeviceErr is an error frame sent by the module itself.
type DeviceErr byte

const (
	UnknownCommand DeviceErr = iota + 1
	ChannelError
	ParameterError
	ValueError
	PermissionDenied
)

func (e DeviceErr) Error() string {
	switch e {
	case UnknownCommand:
		return "Unknown Command"
	case ChannelError:
		return "Channel Error"
	case ParameterError:
		return "Parameter Error"
	case ValueError:
		return "Value Error"
	case PermissionDenied:
		// remote writes refused while the front panel owns the module
		return "Local Control"
	default:
		return fmt.Sprintf("Err: %d", e)
	}
}

// InvalidReplyErr is a reply the module answered with but whose
// payload does not parse as the caller's expected type.
type InvalidReplyErr []byte

func (e InvalidReplyErr) Error() string {
	// 12345678901234567
	// invalid reply: []
	t := text(e)
	l := 17 + t.Len()
	noteAlloc(l)
	b := make([]byte, 0, l)
	b = append(b, "invalid reply: ["...)
	b = t.Append(b)
	b = append(b, ']')
	return unsafe.String(&b[0], len(b))
}

// ConnErr reports a transport that could not be opened, or one that is
// no longer open.
type ConnErr struct {
	Port string
	Err  error
}

func (e ConnErr) Error() string {
	if e.Err != nil {
		return e.Err.Error() + " while opening " + e.Port
	}
	if e.Port != "" {
		return e.Port + " is not open"
	}
	return "connection not open"
}

func (e ConnErr) Unwrap() error {
	return e.Err
}

// TimeoutErr means the exchange lock stayed held past the acquisition
// budget; nothing was written to the wire.
type TimeoutErr time.Duration

func (e TimeoutErr) Error() string {
	return "bus busy for over " + time.Duration(e).String()
}

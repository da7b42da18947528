package caenhv

import (
	"fmt"
	"strconv"
	"unsafe"
)

// NoCh marks a module level command carrying no CH field.
const NoCh = -1

// Kind is the payload type a monitor command expects back.
type Kind byte

const (
	Raw Kind = iota // payload returned as received
	Num             // fixed point number
	Int             // integer (bitmasks, counters)
)

type Cmd interface {
	TxBytes() []byte
	Module() int
	Ch() int
	Par() string
	Tx() string

	RxBytes() *[]byte
	Rx() string
	Err() error

	String() string
}

type cmd struct {
	tx []byte
	rx []byte

	module int
	ch     int
	par    string

	parsed bool
	val    string
	hasVal bool
	err    error
}

func (c *cmd) TxBytes() []byte {
	return c.tx
}

func (c *cmd) Module() int {
	return c.module
}

func (c *cmd) Ch() int {
	return c.ch
}

func (c *cmd) Par() string {
	return c.par
}

func (c *cmd) RxBytes() *[]byte {
	return &c.rx
}

func (c *cmd) Tx() string {
	return string(c.tx[:len(c.tx)-2])
}

func (c *cmd) Rx() string {
	if len(c.rx) == 0 {
		return ""
	}
	t := text(c.rx)
	l := t.Len()
	noteAlloc(l)
	b := t.Append(make([]byte, 0, l))
	return unsafe.String(&b[0], len(b))
}

func (c *cmd) String() string {
	return c.Tx() + "\n" + c.Rx()
}

// encode builds the request line. Mnemonics and values must not
// contain ',' ':' or CRLF; that is a precondition, not checked here.
func encode(module, ch int, op, par, val string) []byte {
	if module < 0 || module > 99 {
		panic(fmt.Sprintf("invalid module: %d", module))
	}
	if ch != NoCh && ch < 0 {
		panic(fmt.Sprintf("invalid channel: %d", ch))
	}
	if par == "" {
		panic("empty par")
	}

	// $BD:  4
	// ,CMD: 5
	// ,PAR: 5
	// CRLF  2
	l := 16 + intLen(module) + len(op) + len(par)
	if ch != NoCh {
		l += 4 + intLen(ch)
	}
	if val != "" {
		l += 5 + len(val)
	}
	noteAlloc(l)
	b := make([]byte, 0, l)
	b = append(b, "$BD:"...)
	b = strconv.AppendInt(b, int64(module), 10)
	b = append(b, ",CMD:"...)
	b = append(b, op...)
	if ch != NoCh {
		b = append(b, ",CH:"...)
		b = strconv.AppendInt(b, int64(ch), 10)
	}
	b = append(b, ",PAR:"...)
	b = append(b, par...)
	if val != "" {
		b = append(b, ",VAL:"...)
		b = append(b, val...)
	}
	return append(b, '\r', '\n')
}

func intLen(x int) int {
	l := 1
	for x > 9 {
		x /= 10
		l++
	}
	return l
}

//----------------------------------------------------------------------

// MonCmd reads one parameter.
type MonCmd struct {
	cmd
	kind Kind
	conv bool
	f    float64
	n    int
}

func NewMonCmd(module, ch int, par string, kind Kind) *MonCmd {
	c := &MonCmd{kind: kind}
	c.module = module
	c.ch = ch
	c.par = par
	c.tx = encode(module, ch, "MON", par, "")
	return c
}

// Err classifies the reply and converts the payload to the expected
// kind. A reply carrying no VAL field is not an error; HasVal reports
// it.
func (c *MonCmd) Err() error {
	if c.conv {
		return c.err
	}
	c.conv = true
	c.parse()
	if c.err != nil || !c.hasVal {
		return c.err
	}
	switch c.kind {
	case Num:
		f, err := strconv.ParseFloat(c.val, 64)
		if err != nil {
			c.hasVal = false
			c.err = InvalidReplyErr(c.rx)
		} else {
			c.f = f
		}
	case Int:
		n, err := strconv.Atoi(c.val)
		if err != nil {
			c.hasVal = false
			c.err = InvalidReplyErr(c.rx)
		} else {
			c.n = n
		}
	}
	return c.err
}

func (c *MonCmd) HasVal() bool {
	return c.hasVal
}

func (c *MonCmd) Str() string {
	return c.val
}

func (c *MonCmd) Float() float64 {
	return c.f
}

func (c *MonCmd) Int() int {
	return c.n
}

//----------------------------------------------------------------------

// SetCmd writes one parameter, or fires a parameter that takes no
// value (ON, OFF, BDCLR).
type SetCmd struct {
	cmd
}

func NewSetCmd(module, ch int, par string) *SetCmd {
	c := &SetCmd{}
	c.module = module
	c.ch = ch
	c.par = par
	c.tx = encode(module, ch, "SET", par, "")
	return c
}

func NewSetValCmd(module, ch int, par, val string) *SetCmd {
	if val == "" {
		panic("empty val")
	}
	c := &SetCmd{}
	c.module = module
	c.ch = ch
	c.par = par
	c.tx = encode(module, ch, "SET", par, val)
	return c
}

// NewSetNumCmd formats the value as a fixed point number with one
// decimal digit, the form the module expects for voltages, currents
// and ramp rates.
func NewSetNumCmd(module, ch int, par string, val float64) *SetCmd {
	return NewSetValCmd(module, ch, par,
		strconv.FormatFloat(val, 'f', 1, 64))
}

func (c *SetCmd) Err() error {
	c.parse()
	return c.err
}

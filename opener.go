package caenhv

import (
	"time"

	"go.bug.st/serial"
)

// Opener opens the serial line the module is attached to. Zero fields
// other than Port get the device defaults.
type Opener struct {
	Port    string
	Baud    int
	Timeout time.Duration
}

func (o *Opener) Open() (Conn, error) {
	if o.Port == "" {
		panic("empty Opener.Port")
	}
	if o.Baud <= 0 {
		o.Baud = BAUD
	}
	if o.Timeout <= 0 {
		o.Timeout = TIMEOUT
	}

	p, err := serial.Open(o.Port, &serial.Mode{BaudRate: o.Baud})
	if err != nil {
		return nil, ConnErr{Port: o.Port, Err: err}
	}
	if err := p.SetReadTimeout(o.Timeout); err != nil {
		p.Close()
		return nil, ConnErr{Port: o.Port, Err: err}
	}
	log("%s opened @ %d", o.Port, o.Baud)
	return &port{p: p, open: true}, nil
}

// port adapts a serial.Port to Conn, tracking open state since the
// library does not expose it.
type port struct {
	p    serial.Port
	open bool
}

func (p *port) Read(b []byte) (int, error) {
	return p.p.Read(b)
}

func (p *port) Write(b []byte) (int, error) {
	return p.p.Write(b)
}

func (p *port) Close() error {
	if !p.open {
		return nil
	}
	p.open = false
	return p.p.Close()
}

func (p *port) IsOpen() bool {
	return p.open
}

package caenhv

import (
	"bytes"
	"io"
	"sync/atomic"
	"time"

	"github.com/bangzek/clock"
)

var (
	ctime = clock.New()
)

// SetClock swaps the package clock, for tests.
func SetClock(c clock.Clock) {
	ctime = c
}

const (
	BAUD    = 115200
	TIMEOUT = time.Second     // transport read timeout
	BUSY    = 5 * time.Second // exchange acquisition budget
	POLL    = time.Millisecond
)

// Conn is the byte oriented half duplex line the module hangs off.
// Read must return (0, nil) when the read timeout lapses with no data.
type Conn interface {
	io.ReadWriteCloser
	IsOpen() bool
}

type ConnOpener interface {
	Open() (Conn, error)
}

// Controller owns the shared transport and runs one exchange at a
// time over it. Callers contend on a busy flag with no fairness
// guarantee; the target deployment is single client, so starvation
// under heavy contention is accepted.
type Controller struct {
	Opener ConnOpener

	conn Conn
	busy int32
}

// Connect opens the transport. NewDevice calls it so a facade never
// exists over a port that could not be opened.
func (c *Controller) Connect() error {
	if c.IsConnected() {
		return nil
	}
	conn, err := c.Opener.Open()
	if err != nil {
		return err
	}
	c.conn = conn
	return nil
}

func (c *Controller) Close() {
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
}

func (c *Controller) IsConnected() bool {
	return c.conn != nil && c.conn.IsOpen()
}

// Send runs one exchange: one write of the encoded command, one line
// read, then decode. The busy flag is released on every exit path so
// a failed exchange cannot wedge the next call.
func (c *Controller) Send(cmd Cmd) error {
	if err := c.acquire(); err != nil {
		return err
	}
	defer c.release()

	if !c.IsConnected() {
		return ConnErr{}
	}

	tx := cmd.TxBytes()
	debugLog("TX: %s", cmd.Tx())
	if n, err := c.conn.Write(tx); err != nil {
		c.Close()
		return err
	} else if n != len(tx) {
		c.Close()
		return io.ErrShortWrite
	}

	line, err := c.readLine()
	if err != nil {
		c.Close()
		return err
	}
	rx := cmd.RxBytes()
	*rx = line
	debugLog("RX: %s", cmd.Rx())
	return cmd.Err()
}

// acquire spins on the busy flag. The budget is wall clock time so a
// caller stuck behind a wedged exchange fails instead of hanging.
func (c *Controller) acquire() error {
	start := ctime.Now()
	for !atomic.CompareAndSwapInt32(&c.busy, 0, 1) {
		if ctime.Now().Sub(start) > BUSY {
			return TimeoutErr(BUSY)
		}
		time.Sleep(POLL)
	}
	return nil
}

func (c *Controller) release() {
	atomic.StoreInt32(&c.busy, 0)
}

// readLine collects bytes until LF or until the transport read
// timeout lapses with no data. A bare timeout hands back whatever
// arrived, possibly nothing, and lets the decoder call it "no value".
func (c *Controller) readLine() ([]byte, error) {
	var chunk [32]byte
	line := make([]byte, 0, 32)
	for {
		n, err := c.conn.Read(chunk[:])
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return line, nil
		}
		line = append(line, chunk[:n]...)
		if bytes.IndexByte(chunk[:n], '\n') >= 0 {
			return line, nil
		}
	}
}

package caenhv

import "bytes"

// Reply grammar:
//
//	#BD:<id>,CMD:OK[,VAL:<payload>]\r\n
//	#BD:<id>,{CMD|CH|PAR|VAL|LOC}:ERR\r\n
//
// Error frames take any digit run as the board id; the OK frame
// requires the two digit form the device actually emits. Anything
// else, including an empty read, decodes to "no value". Well formed
// error frames become structured errors, never panics.
func (c *cmd) parse() {
	if c.parsed {
		return
	}
	c.parsed = true

	ln := c.rx
	for len(ln) > 0 && (ln[0] == ' ' || ln[0] == '\t') {
		ln = ln[1:]
	}
	if !bytes.HasSuffix(ln, []byte("\r\n")) {
		return
	}
	body := ln[:len(ln)-2]
	if !bytes.HasPrefix(body, []byte("#BD:")) {
		return
	}
	body = body[4:]
	d := 0
	for d < len(body) && body[d] >= '0' && body[d] <= '9' {
		d++
	}
	if d == 0 || d >= len(body) || body[d] != ',' {
		return
	}
	rest := body[d+1:]

	switch {
	case bytes.Equal(rest, []byte("CMD:ERR")):
		c.err = UnknownCommand
	case bytes.Equal(rest, []byte("CH:ERR")):
		c.err = ChannelError
	case bytes.Equal(rest, []byte("PAR:ERR")):
		c.err = ParameterError
	case bytes.Equal(rest, []byte("VAL:ERR")):
		c.err = ValueError
	case bytes.Equal(rest, []byte("LOC:ERR")):
		c.err = PermissionDenied
	case d == 2 && bytes.HasPrefix(rest, []byte("CMD:OK,VAL:")):
		c.val = string(rest[11:])
		c.hasVal = true
	}
}

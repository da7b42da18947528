package caenhv

// text renders a raw protocol line for logs and error strings. CR, LF
// and non printable bytes are escaped so a reply always fits on one
// log line.
type text []byte

func (t text) Len() int {
	l := 0
	for _, x := range t {
		switch {
		case x == '\r' || x == '\n':
			l += 2
		case x < 0x20 || x > 0x7E:
			l += 4
		default:
			l++
		}
	}
	return l
}

func (t text) Append(b []byte) []byte {
	const hex = "0123456789ABCDEF"
	for _, x := range t {
		switch {
		case x == '\r':
			b = append(b, '\\', 'r')
		case x == '\n':
			b = append(b, '\\', 'n')
		case x < 0x20 || x > 0x7E:
			b = append(b, '\\', 'x', hex[x>>4], hex[x&0xF])
		default:
			b = append(b, x)
		}
	}
	return b
}

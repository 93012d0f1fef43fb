package stream

import (
	"net"
	"os"
	"strconv"
)

// OpenFileIn opens the file at path for reading.
func OpenFileIn(path string) (*In, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return NewIn(f), nil
}

// OpenFileOut creates (or truncates) the file at path for buffered
// writing. The handle must be flushed before it is dropped.
func OpenFileOut(path string) (*Out, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return NewBufferedOut(f), nil
}

// DialTCP connects to addr:port and returns both directions of the
// connection as stream handles. The two handles share the socket; the
// runtime treats them as independent resources.
func DialTCP(addr string, port int) (*In, *Out, error) {
	conn, err := net.Dial("tcp", net.JoinHostPort(addr, strconv.Itoa(port)))
	if err != nil {
		return nil, nil, err
	}
	return NewIn(conn), NewOut(conn), nil
}

// ListenTCP binds a TCP listener on addr:port. The caller drives the
// accept loop.
func ListenTCP(addr string, port int) (net.Listener, error) {
	return net.Listen("tcp", net.JoinHostPort(addr, strconv.Itoa(port)))
}

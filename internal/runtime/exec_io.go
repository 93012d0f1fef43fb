package runtime

import (
	"net"
	"strconv"

	"github.com/MeexReay/sustlang/internal/config"
	"github.com/MeexReay/sustlang/internal/script"
	"github.com/MeexReay/sustlang/internal/stream"
	"github.com/MeexReay/sustlang/internal/value"
)

// Stream reads and writes run with the table lock released: a blocked
// socket must not stall every other thread's variable access.

func (rt *Runtime) execWrite(in *script.Instruction, locals map[string]value.Value) error {
	if err := needArgs(in, 2); err != nil {
		return err
	}

	rt.mu.Lock()
	src, err := rt.getVar(in.Args[0], locals)
	if err != nil {
		rt.mu.Unlock()
		return err
	}
	out, err := rt.outOperand(in.Args[1], locals)
	if err != nil {
		rt.mu.Unlock()
		return err
	}
	rt.mu.Unlock()

	data, err := value.ToBytes(src)
	if err != nil {
		return wrap(err, in.Args[0])
	}
	if err := out.Write(data); err != nil {
		return errIO("write", err)
	}
	return nil
}

func (rt *Runtime) execRead(in *script.Instruction, global bool, locals map[string]value.Value) error {
	if err := needArgs(in, 3); err != nil {
		return err
	}
	name := in.Args[0]

	rt.mu.Lock()
	target, err := rt.getVar(name, locals)
	if err != nil {
		rt.mu.Unlock()
		return err
	}
	size, err := rt.intOperand(in.Args[1], locals)
	if err != nil {
		rt.mu.Unlock()
		return err
	}
	src, err := rt.inOperand(in.Args[2], locals)
	if err != nil {
		rt.mu.Unlock()
		return err
	}
	rt.mu.Unlock()

	if size < 0 {
		return errf(KindBadArgs, "negative read size %d", size)
	}
	data, err := src.ReadExact(int(size))
	if err != nil {
		return errIO("read", err)
	}
	v, err := value.FromBytes(target, data)
	if err != nil {
		return wrap(err, name)
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.assignVar(name, v, global, locals)
}

func (rt *Runtime) execReadAll(in *script.Instruction, global bool, locals map[string]value.Value) error {
	if err := needArgs(in, 2); err != nil {
		return err
	}
	name := in.Args[0]

	rt.mu.Lock()
	target, err := rt.getVar(name, locals)
	if err != nil {
		rt.mu.Unlock()
		return err
	}
	src, err := rt.inOperand(in.Args[1], locals)
	if err != nil {
		rt.mu.Unlock()
		return err
	}
	rt.mu.Unlock()

	data, err := src.ReadAll()
	if err != nil {
		return errIO("read", err)
	}
	v, err := value.FromBytes(target, data)
	if err != nil {
		return wrap(err, name)
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.assignVar(name, v, global, locals)
}

func (rt *Runtime) execOpenFileIn(in *script.Instruction, global bool, locals map[string]value.Value) error {
	if err := needArgs(in, 2); err != nil {
		return err
	}

	rt.mu.Lock()
	path, err := rt.strOperand(in.Args[0], locals)
	rt.mu.Unlock()
	if err != nil {
		return err
	}

	h, err := stream.OpenFileIn(path)
	if err != nil {
		return errIO("open "+path, err)
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.assignVar(in.Args[1], value.NewInStream(h), global, locals)
}

func (rt *Runtime) execOpenFileOut(in *script.Instruction, global bool, locals map[string]value.Value) error {
	if err := needArgs(in, 2); err != nil {
		return err
	}

	rt.mu.Lock()
	path, err := rt.strOperand(in.Args[0], locals)
	rt.mu.Unlock()
	if err != nil {
		return err
	}

	h, err := stream.OpenFileOut(path)
	if err != nil {
		return errIO("open "+path, err)
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.assignVar(in.Args[1], value.NewOutStream(h), global, locals)
}

func (rt *Runtime) execOpenTCPConnection(in *script.Instruction, global bool, locals map[string]value.Value) error {
	if err := needArgs(in, 4); err != nil {
		return err
	}

	rt.mu.Lock()
	addr, err := rt.strOperand(in.Args[0], locals)
	if err != nil {
		rt.mu.Unlock()
		return err
	}
	port, err := rt.intOperand(in.Args[1], locals)
	rt.mu.Unlock()
	if err != nil {
		return err
	}

	ins, outs, err := stream.DialTCP(addr, int(port))
	if err != nil {
		return errIO("dial "+addr, err)
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()
	if err := rt.assignVar(in.Args[2], value.NewInStream(ins), global, locals); err != nil {
		return err
	}
	return rt.assignVar(in.Args[3], value.NewOutStream(outs), global, locals)
}

func (rt *Runtime) execOpenTCPListener(in *script.Instruction, locals map[string]value.Value) error {
	if err := needArgs(in, 3); err != nil {
		return err
	}

	rt.mu.Lock()
	addr, err := rt.strOperand(in.Args[0], locals)
	if err != nil {
		rt.mu.Unlock()
		return err
	}
	port, err := rt.intOperand(in.Args[1], locals)
	if err != nil {
		rt.mu.Unlock()
		return err
	}
	fn, err := rt.function(in.Args[2])
	rt.mu.Unlock()
	if err != nil {
		return err
	}

	l, err := stream.ListenTCP(addr, int(port))
	if err != nil {
		return errIO("listen "+addr, err)
	}

	go rt.acceptLoop(l, fn)
	return nil
}

// acceptLoop hands each accepted connection to the handler function as
// (addr string, port int, in_stream, out_stream) on its own goroutine.
func (rt *Runtime) acceptLoop(l net.Listener, fn *script.Function) {
	for {
		conn, err := l.Accept()
		if err != nil {
			rt.reportTaskError("accept", err)
			return
		}
		go func(conn net.Conn) {
			host, portText, err := net.SplitHostPort(conn.RemoteAddr().String())
			if err != nil {
				host, portText = conn.RemoteAddr().String(), "0"
			}
			port, _ := strconv.Atoi(portText)

			args := []value.Value{
				value.NewString(host),
				value.NewInteger(int64(port)),
				value.NewInStream(stream.NewIn(conn)),
				value.NewOutStream(stream.NewOut(conn)),
			}
			if err := rt.callFunction(fn, config.DiscardVar, args, false, map[string]value.Value{}); err != nil {
				rt.reportTaskError("connection "+host, err)
			}
			conn.Close()
		}(conn)
	}
}

func (rt *Runtime) inOperand(name string, locals map[string]value.Value) (*stream.In, error) {
	v, err := rt.getVar(name, locals)
	if err != nil {
		return nil, err
	}
	h, err := value.AsInStream(v)
	if err != nil {
		return nil, wrap(err, name)
	}
	return h, nil
}

func (rt *Runtime) outOperand(name string, locals map[string]value.Value) (*stream.Out, error) {
	v, err := rt.getVar(name, locals)
	if err != nil {
		return nil, err
	}
	h, err := value.AsOutStream(v)
	if err != nil {
		return nil, wrap(err, name)
	}
	return h, nil
}

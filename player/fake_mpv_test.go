package player

import (
	"bufio"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// fakeMPV speaks enough of mpv's JSON-IPC to drive MPV in tests.
// Loading a URL containing "broken" ends with reason=error, one containing "held" never loads.
type fakeMPV struct {
	dir string
	ln  net.Listener
	wg  sync.WaitGroup

	mu        sync.Mutex
	conns     []net.Conn
	observers []net.Conn
	props     map[string]interface{}
	loads     []string
	nextID    int
}

func newFakeMPV() (*fakeMPV, error) {
	// short path, unix sockets are limited to ~104 bytes
	dir, err := os.MkdirTemp("", "vs")
	if err != nil {
		return nil, err
	}

	ln, err := net.Listen("unix", filepath.Join(dir, "mpv.sock"))
	if err != nil {
		os.RemoveAll(dir)
		return nil, err
	}

	f := &fakeMPV{
		dir:   dir,
		ln:    ln,
		props: map[string]interface{}{"pause": false, "pid": 4242.0},
	}

	f.wg.Add(1)
	go f.accept()
	return f, nil
}

func (f *fakeMPV) socket() string {
	return f.ln.Addr().String()
}

func (f *fakeMPV) close() {
	f.ln.Close()

	f.mu.Lock()
	for _, c := range f.conns {
		c.Close()
	}
	f.mu.Unlock()

	f.wg.Wait()
	os.RemoveAll(f.dir)
}

func (f *fakeMPV) accept() {
	defer f.wg.Done()

	for {
		conn, err := f.ln.Accept()
		if err != nil {
			return
		}

		f.mu.Lock()
		f.conns = append(f.conns, conn)
		f.mu.Unlock()

		f.wg.Add(1)
		go f.serve(conn)
	}
}

func (f *fakeMPV) serve(conn net.Conn) {
	defer f.wg.Done()
	defer conn.Close()

	reader := bufio.NewReader(conn)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			return
		}

		var cmd ipcCommand
		if err := json.Unmarshal(line, &cmd); err != nil || len(cmd.Command) == 0 {
			f.write(conn, map[string]interface{}{"error": "invalid parameter"})
			continue
		}

		f.handle(conn, cmd.Command)
	}
}

func (f *fakeMPV) handle(conn net.Conn, command []interface{}) {
	name, _ := command[0].(string)

	f.mu.Lock()
	defer f.mu.Unlock()

	switch name {
	case "observe_property":
		f.observers = append(f.observers, conn)
		f.reply(conn, nil)
	case "get_property":
		value, ok := f.props[command[1].(string)]
		if !ok {
			f.write(conn, map[string]interface{}{"error": "property unavailable"})
			return
		}
		f.reply(conn, value)
	case "set_property":
		f.setProp(command[1].(string), command[2])
		f.reply(conn, nil)
	case "cycle":
		paused, _ := f.props["pause"].(bool)
		f.setProp("pause", !paused)
		f.reply(conn, nil)
	case "seek":
		f.props["time-pos"] = command[1]
		f.reply(conn, nil)
	case "loadfile":
		target := command[1].(string)
		f.nextID++
		id := f.nextID
		f.loads = append(f.loads, target)
		f.props["time-pos"] = 0.0

		f.reply(conn, map[string]interface{}{"playlist_entry_id": id})

		f.broadcast(map[string]interface{}{"event": "start-file", "playlist_entry_id": id})
		switch {
		case strings.Contains(target, "broken"):
			f.broadcast(map[string]interface{}{"event": "end-file", "reason": "error", "playlist_entry_id": id})
		case strings.Contains(target, "held"):
		default:
			f.broadcast(map[string]interface{}{"event": "file-loaded"})
		}
	default:
		f.reply(conn, nil)
	}
}

// setProp updates a property and notifies observers. Caller holds mu.
func (f *fakeMPV) setProp(name string, value interface{}) {
	f.props[name] = value
	if name == "pause" {
		f.broadcast(map[string]interface{}{"event": "property-change", "id": 1, "name": "pause", "data": value})
	}
}

func (f *fakeMPV) reply(conn net.Conn, data interface{}) {
	f.write(conn, map[string]interface{}{"data": data, "error": "success"})
}

// broadcast sends an event to the observing connections. Caller holds mu.
func (f *fakeMPV) broadcast(event map[string]interface{}) {
	for _, c := range f.observers {
		f.write(c, event)
	}
}

func (f *fakeMPV) write(conn net.Conn, v interface{}) {
	payload, _ := json.Marshal(v)
	_, _ = conn.Write(append(payload, '\n'))
}

func (f *fakeMPV) loaded() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.loads...)
}

func (f *fakeMPV) prop(name string) interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.props[name]
}

func (f *fakeMPV) set(name string, value interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.props[name] = value
}

package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/golang/glog"

	"picodeck/internal/seriallink"
	"picodeck/keypad"
	"picodeck/proto"
)

// splitEvents is a bufio.SplitFunc for the device's key event stream.
func splitEvents(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if i := bytes.Index(data, []byte(proto.EventTerminator)); i >= 0 {
		return i + len(proto.EventTerminator), data[:i], nil
	}
	if atEOF && len(data) > 0 {
		return len(data), data, nil
	}
	if len(data) >= proto.MaxFrameBytes {
		return 0, nil, fmt.Errorf("%w: no event terminator in %d bytes", proto.ErrCapacityExceeded, len(data))
	}
	return 0, nil, nil
}

// readEvents decodes key events from r until it ends. Undecodable messages are
// logged and skipped. A closed port ends the stream without error.
func readEvents(r io.Reader, fn func(keypad.Event) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, proto.MaxEventBytes), proto.MaxFrameBytes+len(proto.EventTerminator))
	sc.Split(splitEvents)

	for sc.Scan() {
		msg := bytes.TrimSpace(sc.Bytes())
		if len(msg) == 0 {
			continue
		}
		ev, err := proto.ParseKeyEvent(string(msg))
		if err != nil {
			glog.Warningf("dropped message %q: %v", msg, err)
			continue
		}
		if glog.V(2) {
			glog.Infof("RECV %q", msg)
		}
		if err := fn(ev); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil && !seriallink.IsClosed(err) {
		return err
	}
	return nil
}

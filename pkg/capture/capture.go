package capture

import (
	"bufio"
	"encoding/json"
	"io"
	"time"

	"github.com/bardasz/etp/pkg/protocol"
)

// Direction of a recorded frame.
type Direction string

const (
	Sent     Direction = "sent"
	Received Direction = "received"
)

// Entry is one recorded frame.
type Entry struct {
	Time      time.Time              `json:"time"`
	Direction Direction              `json:"direction"`
	Header    protocol.MessageHeader `json:"header"`
	Name      string                 `json:"name,omitempty"`

	// Frame is the complete websocket payload: header, optional extension
	// and body exactly as sent or received.
	Frame []byte `json:"frame"`
}

// Recorder receives every frame of a session.
type Recorder interface {
	Record(Entry) error
	Close() error
}

// encode writes e as a single JSON line.
func encode(w io.Writer, e Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// ReadEntries decodes a transcript, calling fn for every entry in order.
func ReadEntries(r io.Reader, fn func(Entry) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 64*1024*1024)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		var e Entry
		if err := json.Unmarshal(line, &e); err != nil {
			return err
		}
		if err := fn(e); err != nil {
			return err
		}
	}
	return sc.Err()
}

package protocol

import (
	"encoding/json"
	"errors"
	"io"
	"sync"
)

// ErrClosed is returned by transport operations after Close.
var ErrClosed = errors.New("transport closed")

// Transport moves messages between the core and a presentation surface.
// Sends and receives are each ordered; there is a single writer per
// direction and no request/response correlation beyond method dispatch.
type Transport interface {
	Send(Message) error
	// Receive blocks for the next inbound message and returns io.EOF once
	// the other side is gone.
	Receive() (Message, error)
	Close() error
}

// StreamTransport speaks newline-delimited JSON over a byte stream, e.g.
// stdin/stdout when the surface runs in another process.
type StreamTransport struct {
	mu  sync.Mutex
	enc *json.Encoder
	dec *json.Decoder
	c   io.Closer
}

func NewStreamTransport(r io.Reader, w io.Writer) *StreamTransport {
	t := &StreamTransport{
		enc: json.NewEncoder(w),
		dec: json.NewDecoder(r),
	}
	if c, ok := r.(io.Closer); ok {
		t.c = c
	}
	return t
}

func (t *StreamTransport) Send(msg Message) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.enc.Encode(msg)
}

func (t *StreamTransport) Receive() (Message, error) {
	var msg Message
	if err := t.dec.Decode(&msg); err != nil {
		return Message{}, err
	}
	return msg, nil
}

func (t *StreamTransport) Close() error {
	if t.c != nil {
		return t.c.Close()
	}
	return nil
}

// PipeTransport is one end of an in-process duplex channel pair.
type PipeTransport struct {
	out       chan<- Message
	in        <-chan Message
	closeOnce sync.Once
	done      chan struct{}
	peerDone  chan struct{}
}

// Pipe returns two connected transports; what one sends the other receives.
func Pipe() (*PipeTransport, *PipeTransport) {
	ab := make(chan Message, 16)
	ba := make(chan Message, 16)
	aDone := make(chan struct{})
	bDone := make(chan struct{})
	a := &PipeTransport{out: ab, in: ba, done: aDone, peerDone: bDone}
	b := &PipeTransport{out: ba, in: ab, done: bDone, peerDone: aDone}
	return a, b
}

func (t *PipeTransport) Send(msg Message) error {
	select {
	case <-t.done:
		return ErrClosed
	case <-t.peerDone:
		return ErrClosed
	case t.out <- msg:
		return nil
	}
}

func (t *PipeTransport) Receive() (Message, error) {
	select {
	case msg, ok := <-t.in:
		if !ok {
			return Message{}, io.EOF
		}
		return msg, nil
	case <-t.peerDone:
		// Drain anything already in flight before reporting EOF.
		select {
		case msg := <-t.in:
			return msg, nil
		default:
			return Message{}, io.EOF
		}
	case <-t.done:
		return Message{}, io.EOF
	}
}

func (t *PipeTransport) Close() error {
	t.closeOnce.Do(func() {
		close(t.done)
	})
	return nil
}

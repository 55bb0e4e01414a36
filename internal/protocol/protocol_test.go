package protocol

import (
	"bytes"
	"encoding/json"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idursun/rebase-edit/internal/plan"
)

func TestDecodeRequest(t *testing.T) {
	tests := []struct {
		name     string
		msg      Message
		expected Request
	}{
		{
			name:     "ready",
			msg:      Message{ID: "1", Method: MethodReady},
			expected: Ready{},
		},
		{
			name:     "start",
			msg:      Message{ID: "2", Method: MethodStart},
			expected: StartRebase{},
		},
		{
			name:     "abort",
			msg:      Message{ID: "3", Method: MethodAbort},
			expected: AbortRebase{},
		},
		{
			name:     "change entry",
			msg:      Message{ID: "4", Method: MethodChangeEntry, Params: json.RawMessage(`{"ref":"abc123","action":"reword"}`)},
			expected: ChangeEntry{Ref: "abc123", Action: plan.Reword},
		},
		{
			name:     "change entry with unknown action",
			msg:      Message{ID: "5", Method: MethodChangeEntry, Params: json.RawMessage(`{"ref":"abc123","action":"mystery"}`)},
			expected: ChangeEntry{Ref: "abc123", Action: plan.Pick},
		},
		{
			name:     "move entry",
			msg:      Message{ID: "6", Method: MethodMoveEntry, Params: json.RawMessage(`{"ref":"abc123","down":true}`)},
			expected: MoveEntry{Ref: "abc123", Down: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request, err := DecodeRequest(tt.msg)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, request)
		})
	}
}

func TestDecodeRequestErrors(t *testing.T) {
	_, err := DecodeRequest(Message{Method: "rebase/unknown"})
	assert.Error(t, err)

	_, err = DecodeRequest(Message{Method: MethodChangeEntry, Params: json.RawMessage(`{`)})
	assert.Error(t, err)
}

func TestSequence(t *testing.T) {
	var seq Sequence
	assert.Equal(t, "1", seq.Next())
	assert.Equal(t, "2", seq.Next())
}

func TestSequenceWrapsToOne(t *testing.T) {
	seq := Sequence{last: maxSafeID - 1}
	assert.Equal(t, "9007199254740991", seq.Next())
	// Wraps past the maximum safe integer back to 1, skipping 0.
	assert.Equal(t, "1", seq.Next())
}

func TestStreamTransportRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	out := NewStreamTransport(&bytes.Buffer{}, &buf)
	sent := Message{ID: "7", Method: MethodDidChange, Params: json.RawMessage(`{"header":{}}`)}
	require.NoError(t, out.Send(sent))

	in := NewStreamTransport(&buf, io.Discard)
	received, err := in.Receive()
	require.NoError(t, err)
	assert.Equal(t, sent.ID, received.ID)
	assert.Equal(t, sent.Method, received.Method)
	assert.JSONEq(t, string(sent.Params), string(received.Params))
}

func TestPipeTransport(t *testing.T) {
	a, b := Pipe()
	require.NoError(t, a.Send(Message{ID: "1", Method: MethodReady}))
	msg, err := b.Receive()
	require.NoError(t, err)
	assert.Equal(t, MethodReady, msg.Method)

	require.NoError(t, b.Close())
	assert.ErrorIs(t, a.Send(Message{ID: "2", Method: MethodReady}), ErrClosed)
	_, err = b.Receive()
	assert.ErrorIs(t, err, io.EOF)
}

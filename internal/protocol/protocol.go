package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/idursun/rebase-edit/internal/git"
	"github.com/idursun/rebase-edit/internal/plan"
)

// Message is the wire envelope. Params are method-specific.
type Message struct {
	ID     string          `json:"id"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params,omitempty"`
}

const (
	MethodReady       = "ready"
	MethodStart       = "rebase/start"
	MethodAbort       = "rebase/abort"
	MethodChangeEntry = "rebase/changeEntry"
	MethodMoveEntry   = "rebase/moveEntry"
	MethodDidChange   = "rebase/didChange"
)

// PlanModel is the full snapshot pushed to the presentation surface. Commits
// holds the summaries of the entries that resolved, in resolution order; when
// any ref fails to resolve it is shorter than Entries and the two lists are
// not index-aligned.
type PlanModel struct {
	Header  plan.Header         `json:"header"`
	Entries []plan.Entry        `json:"entries"`
	Commits []git.CommitSummary `json:"commits"`
}

type ChangeEntryParams struct {
	Ref    string `json:"ref"`
	Action string `json:"action"`
}

type MoveEntryParams struct {
	Ref  string `json:"ref"`
	Down bool   `json:"down"`
}

// Request is the decoded form of a presentation-to-core message.
type Request interface {
	isRequest()
}

type (
	Ready       struct{}
	StartRebase struct{}
	AbortRebase struct{}
	ChangeEntry struct {
		Ref    string
		Action plan.Action
	}
	MoveEntry struct {
		Ref  string
		Down bool
	}
)

func (Ready) isRequest()       {}
func (StartRebase) isRequest() {}
func (AbortRebase) isRequest() {}
func (ChangeEntry) isRequest() {}
func (MoveEntry) isRequest()   {}

// DecodeRequest dispatches on the method name into the typed request union.
func DecodeRequest(msg Message) (Request, error) {
	switch msg.Method {
	case MethodReady:
		return Ready{}, nil
	case MethodStart:
		return StartRebase{}, nil
	case MethodAbort:
		return AbortRebase{}, nil
	case MethodChangeEntry:
		var params ChangeEntryParams
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return nil, fmt.Errorf("decoding %s params: %w", msg.Method, err)
		}
		return ChangeEntry{Ref: params.Ref, Action: plan.ParseAction(params.Action)}, nil
	case MethodMoveEntry:
		var params MoveEntryParams
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return nil, fmt.Errorf("decoding %s params: %w", msg.Method, err)
		}
		return MoveEntry{Ref: params.Ref, Down: params.Down}, nil
	}
	return nil, fmt.Errorf("unknown method %q", msg.Method)
}

// NewMessage builds an outbound message, drawing its id from seq.
func NewMessage(seq *Sequence, method string, params any) (Message, error) {
	msg := Message{ID: seq.Next(), Method: method}
	if params != nil {
		raw, err := json.Marshal(params)
		if err != nil {
			return Message{}, err
		}
		msg.Params = raw
	}
	return msg, nil
}

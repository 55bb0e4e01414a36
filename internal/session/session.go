package session

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/idursun/rebase-edit/internal/document"
	"github.com/idursun/rebase-edit/internal/edit"
	"github.com/idursun/rebase-edit/internal/git"
	"github.com/idursun/rebase-edit/internal/plan"
	"github.com/idursun/rebase-edit/internal/protocol"
)

// Session keeps one instruction file and one presentation surface consistent.
// It owns neither: the document store is the source of truth and the surface
// only ever sees full snapshots of it. All work runs on the single Run loop;
// a text change or an inbound message is handled to completion before the
// next one.
type Session struct {
	store     *document.Store
	enricher  git.Enricher
	transport protocol.Transport
	seq       *protocol.Sequence
	branch    string

	// OnClose is invoked when the plan is accepted or aborted, so the host
	// can tear down the presentation surface.
	OnClose func()
}

func New(store *document.Store, enricher git.Enricher, transport protocol.Transport, seq *protocol.Sequence, branch string) *Session {
	if seq == nil {
		seq = protocol.DefaultSequence
	}
	return &Session{
		store:     store,
		enricher:  enricher,
		transport: transport,
		seq:       seq,
		branch:    branch,
	}
}

// BuildModel derives a fresh snapshot from the current text. Entries whose
// refs do not resolve are left out of Commits, so Commits can be shorter than
// Entries and the two are not index-aligned.
func (s *Session) BuildModel(ctx context.Context) protocol.PlanModel {
	text := s.store.Text()
	p := plan.Parse(text)
	p.Header.Branch = s.branch

	model := protocol.PlanModel{
		Header:  p.Header,
		Entries: p.Entries,
		Commits: []git.CommitSummary{},
	}
	if model.Entries == nil {
		model.Entries = []plan.Entry{}
	}
	for _, entry := range p.Entries {
		summary, err := s.enricher.Resolve(ctx, entry.Ref)
		if err != nil {
			log.Println("resolving", entry.Ref, "failed:", err)
			continue
		}
		if summary != nil {
			model.Commits = append(model.Commits, *summary)
		}
	}
	return model
}

// Run processes text-change notifications and inbound protocol messages until
// the plan is accepted or aborted, the surface goes away, or ctx is done. The
// transport is closed on the way out so the receive pump never outlives the
// session.
func (s *Session) Run(ctx context.Context) error {
	defer s.transport.Close()

	inbound := make(chan protocol.Message)
	go func() {
		defer close(inbound)
		for {
			msg, err := s.transport.Receive()
			if err != nil {
				if !errors.Is(err, io.EOF) && !errors.Is(err, protocol.ErrClosed) {
					log.Println("receive failed:", err)
				}
				return
			}
			select {
			case inbound <- msg:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.store.Changes():
			s.pushSnapshot(ctx)
		case msg, ok := <-inbound:
			if !ok {
				// Surface is gone; nothing left to keep in sync.
				return nil
			}
			if s.handle(ctx, msg) {
				s.close()
				return nil
			}
		}
	}
}

// handle reacts to one inbound message and reports whether the session is
// finished. Malformed messages and stale requests are dropped, not errors.
func (s *Session) handle(ctx context.Context, msg protocol.Message) bool {
	request, err := protocol.DecodeRequest(msg)
	if err != nil {
		log.Println("dropping message:", err)
		return false
	}

	var mutation edit.Mutation
	switch request := request.(type) {
	case protocol.Ready:
		// Resync path: answer with a fresh snapshot.
		s.pushSnapshot(ctx)
		return false
	case protocol.StartRebase:
		mutation = edit.Start{}
	case protocol.AbortRebase:
		mutation = edit.Abort{}
	case protocol.ChangeEntry:
		mutation = edit.ChangeAction{Ref: request.Ref, Action: request.Action}
	case protocol.MoveEntry:
		mutation = edit.Move{Ref: request.Ref, Down: request.Down}
	}

	// Always plan against a fresh parse of the latest text, never a cached
	// snapshot; the request may be racing an external edit.
	text := s.store.Text()
	outcome := edit.PlanEdits(plan.Parse(text), text, mutation)
	s.store.Apply(outcome.Edits)
	if outcome.Persist {
		if err := s.store.Save(); err != nil {
			log.Println("save failed:", err)
		}
	}
	return outcome.CloseSurface
}

// pushSnapshot sends the current model to the surface. Delivery is best
// effort: a torn-down surface loses the push and that is fine.
func (s *Session) pushSnapshot(ctx context.Context) bool {
	model := s.BuildModel(ctx)
	msg, err := protocol.NewMessage(s.seq, protocol.MethodDidChange, model)
	if err != nil {
		log.Println("encoding snapshot failed:", err)
		return false
	}
	if err := s.transport.Send(msg); err != nil {
		log.Println("push failed:", err)
		return false
	}
	return true
}

func (s *Session) close() {
	if s.OnClose != nil {
		s.OnClose()
	}
}

package contact

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikhilKanaujia/portfolio/internal/relay"
)

type fakeSender struct {
	mu    sync.Mutex
	calls []relay.Submission

	reply relay.Reply
	err   error

	// gate, when set, blocks Send until closed.
	gate    chan struct{}
	entered chan struct{}
	panics  bool
}

func (f *fakeSender) Send(ctx context.Context, sub relay.Submission) (relay.Reply, error) {
	f.mu.Lock()
	f.calls = append(f.calls, sub)
	f.mu.Unlock()

	if f.entered != nil {
		close(f.entered)
	}
	if f.gate != nil {
		<-f.gate
	}
	if f.panics {
		panic("boom")
	}
	return f.reply, f.err
}

func (f *fakeSender) sent() []relay.Submission {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]relay.Submission(nil), f.calls...)
}

func fill(c *Controller) {
	c.UpdateField(FieldName, "Ada")
	c.UpdateField(FieldEmail, "ada@example.com")
	c.UpdateField(FieldMessage, "Hi!")
}

func TestNewControllerIsIdle(t *testing.T) {
	c := New(&fakeSender{})
	assert.Equal(t, Status{Kind: Idle}, c.Status())
	assert.Equal(t, Fields{}, c.Fields())
}

func TestUpdateFieldLatestValueIsSubmitted(t *testing.T) {
	s := &fakeSender{reply: relay.Reply{Success: true}}
	c := New(s)

	c.UpdateField(FieldName, "A")
	c.UpdateField(FieldName, "Ad")
	c.UpdateField(FieldEmail, "a@x")
	c.UpdateField(FieldName, "Ada")
	c.UpdateField(FieldMessage, "first")
	c.UpdateField(FieldEmail, "ada@example.com")
	c.UpdateField(FieldMessage, "second")
	c.UpdateField(Field("phone"), "555")

	c.Submit(context.Background())

	want := []relay.Submission{{Name: "Ada", Email: "ada@example.com", Message: "second"}}
	if diff := cmp.Diff(want, s.sent()); diff != "" {
		t.Errorf("submitted payload mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmitOutcomes(t *testing.T) {
	filled := Fields{Name: "Ada", Email: "ada@example.com", Message: "Hi!"}

	tests := []struct {
		name       string
		reply      relay.Reply
		err        error
		wantStatus Status
		wantFields Fields
	}{
		{
			name:       "success with message",
			reply:      relay.Reply{Success: true, Message: "Thanks"},
			wantStatus: Status{Kind: Success, Message: "Thanks"},
			wantFields: Fields{},
		},
		{
			name:       "success without message",
			reply:      relay.Reply{Success: true},
			wantStatus: Status{Kind: Success, Message: SuccessFallback},
			wantFields: Fields{},
		},
		{
			name:       "relay rejects with reason",
			err:        &relay.ApplicationError{Message: "Bad email"},
			wantStatus: Status{Kind: Error, Message: "Bad email"},
			wantFields: filled,
		},
		{
			name:       "relay rejects without reason",
			err:        &relay.ApplicationError{},
			wantStatus: Status{Kind: Error, Message: RejectedFallback},
			wantFields: filled,
		},
		{
			name:       "non-2xx status",
			err:        &relay.TransportError{StatusCode: 503},
			wantStatus: Status{Kind: Error, Message: RejectedFallback},
			wantFields: filled,
		},
		{
			name:       "non-2xx status with reason",
			err:        &relay.TransportError{StatusCode: 400, Message: "Form should POST"},
			wantStatus: Status{Kind: Error, Message: "Form should POST"},
			wantFields: filled,
		},
		{
			name:       "network unreachable",
			err:        &relay.TransportError{Err: errors.New("dial tcp: connection refused")},
			wantStatus: Status{Kind: Error, Message: UnexpectedFallback},
			wantFields: filled,
		},
		{
			name:       "unknown error",
			err:        errors.New("something else"),
			wantStatus: Status{Kind: Error, Message: RejectedFallback},
			wantFields: filled,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := New(&fakeSender{reply: tc.reply, err: tc.err})
			fill(c)

			st, started := c.Submit(context.Background())
			assert.True(t, started)
			assert.Equal(t, tc.wantStatus, st)
			assert.Equal(t, tc.wantStatus, c.Status())
			assert.Equal(t, tc.wantFields, c.Fields())
			assert.True(t, c.Status().IsTerminal())
		})
	}
}

func TestSubmitWhileSubmittingIsNoop(t *testing.T) {
	s := &fakeSender{
		reply:   relay.Reply{Success: true, Message: "Thanks"},
		gate:    make(chan struct{}),
		entered: make(chan struct{}),
	}
	c := New(s)
	fill(c)

	done := make(chan Status)
	go func() {
		st, _ := c.Submit(context.Background())
		done <- st
	}()
	<-s.entered

	require.Equal(t, Status{Kind: Submitting}, c.Status())

	st, started := c.Submit(context.Background())
	assert.False(t, started)
	assert.Equal(t, Status{Kind: Submitting}, st)
	assert.Equal(t, Status{Kind: Submitting}, c.Status())
	assert.Len(t, s.sent(), 1)

	// Fields stay editable while the request is out.
	c.UpdateField(FieldMessage, "typed during send")

	close(s.gate)
	select {
	case st := <-done:
		assert.Equal(t, Status{Kind: Success, Message: "Thanks"}, st)
	case <-time.After(5 * time.Second):
		t.Fatal("submit did not finish")
	}
	assert.Len(t, s.sent(), 1)
	assert.Equal(t, Fields{}, c.Fields())
}

func TestSubmitClearsPriorMessage(t *testing.T) {
	s := &fakeSender{
		err:     &relay.ApplicationError{Message: "Bad email"},
		gate:    make(chan struct{}),
		entered: make(chan struct{}),
	}
	c := New(s)
	close(s.gate)
	c.Submit(context.Background())
	require.Equal(t, Status{Kind: Error, Message: "Bad email"}, c.Status())

	s.gate = make(chan struct{})
	s.entered = make(chan struct{})
	go c.Submit(context.Background())
	<-s.entered
	assert.Equal(t, Status{Kind: Submitting}, c.Status())
	close(s.gate)
}

func TestSubmitRecoversFromPanickingSender(t *testing.T) {
	c := New(&fakeSender{panics: true})
	fill(c)

	st, started := c.Submit(context.Background())
	assert.True(t, started)
	assert.Equal(t, Status{Kind: Error, Message: UnexpectedFallback}, st)
	assert.Equal(t, st, c.Status())
	assert.Equal(t, "Ada", c.Fields().Name)
}

func TestConcurrentSubmitsSendOnce(t *testing.T) {
	s := &fakeSender{reply: relay.Reply{Success: true}, gate: make(chan struct{}), entered: make(chan struct{})}
	c := New(s)
	fill(c)

	var started atomic.Int32
	var wg sync.WaitGroup
	first := make(chan struct{})
	go func() {
		defer close(first)
		if _, ok := c.Submit(context.Background()); ok {
			started.Add(1)
		}
	}()
	<-s.entered
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := c.Submit(context.Background()); ok {
				started.Add(1)
			}
		}()
	}
	wg.Wait()
	close(s.gate)
	<-first

	assert.Equal(t, Success, c.Status().Kind)
	assert.Equal(t, int32(1), started.Load())
	assert.Len(t, s.sent(), 1)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "submitting", Submitting.String())
	assert.Equal(t, "success", Success.String())
	assert.Equal(t, "error", Error.String())
	assert.Equal(t, "unknown", Kind(42).String())
}

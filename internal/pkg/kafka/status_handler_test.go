package kafka

import (
	"Community/internal/service"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/IBM/sarama"
)

type fakeStatusService struct {
	mu     sync.Mutex
	calls  []StatusEvent
	errFor map[string]error
}

func (f *fakeStatusService) ApplyCounterDelta(_ context.Context, postID uint64, counter string, delta int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, StatusEvent{PostID: postID, Counter: counter, Delta: delta})
	return f.errFor[counter]
}

type fakeSession struct {
	ctx    context.Context
	marked []*sarama.ConsumerMessage
	commit int
}

func (f *fakeSession) Claims() map[string][]int32               { return nil }
func (f *fakeSession) MemberID() string                         { return "test" }
func (f *fakeSession) GenerationID() int32                      { return 1 }
func (f *fakeSession) MarkOffset(string, int32, int64, string)  {}
func (f *fakeSession) ResetOffset(string, int32, int64, string) {}
func (f *fakeSession) MarkMessage(msg *sarama.ConsumerMessage, _ string) {
	f.marked = append(f.marked, msg)
}
func (f *fakeSession) Commit()                  { f.commit++ }
func (f *fakeSession) Context() context.Context { return f.ctx }

func TestPostStatusHandlerLogic(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		errFor   map[string]error
		wantDrop bool
		wantCall bool
	}{
		{"valid like event", `{"post_id":3,"counter":"like","delta":1}`, nil, false, true},
		{"malformed json", `{"post_id":`, nil, true, false},
		{"unknown counter", `{"post_id":3,"counter":"share","delta":1}`, map[string]error{"share": service.ErrParamInvalid}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeStatusService{errFor: tt.errFor}
			h := NewPostStatusHandler(svc)

			err := h.logic(context.Background(), &sarama.ConsumerMessage{Value: []byte(tt.value)})
			if tt.wantDrop != errors.Is(err, ErrDropMessage) {
				t.Errorf("logic() error = %v, wantDrop %v", err, tt.wantDrop)
			}
			if !tt.wantDrop && err != nil {
				t.Errorf("logic() unexpected error = %v", err)
			}
			if tt.wantCall != (len(svc.calls) == 1) {
				t.Errorf("service calls = %d, wantCall %v", len(svc.calls), tt.wantCall)
			}
		})
	}
}

func TestProcessBatchMarksLastMessage(t *testing.T) {
	svc := &fakeStatusService{}
	h := NewPostStatusHandler(svc)
	session := &fakeSession{ctx: context.Background()}

	messages := []*sarama.ConsumerMessage{
		{Offset: 1, Value: []byte(`{"post_id":1,"counter":"view","delta":1}`)},
		{Offset: 2, Value: []byte(`not json`)},
		{Offset: 3, Value: []byte(`{"post_id":2,"counter":"comment","delta":-1}`)},
	}
	processBatch(session, messages, h.logic)

	if len(svc.calls) != 2 {
		t.Errorf("service calls = %d, want 2", len(svc.calls))
	}
	if len(session.marked) != 1 || session.marked[0].Offset != 3 {
		t.Errorf("marked = %v, want only offset 3", session.marked)
	}
	if session.commit != 1 {
		t.Errorf("commit = %d, want 1", session.commit)
	}
}

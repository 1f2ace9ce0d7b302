package event_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/pulsefeed/post-events/pkg/event"
)

func TestMakeEventCarriesPayloadJSON(t *testing.T) {
	body := event.PostCreatedBody{
		PostId:    "p1",
		UserId:    "u1",
		Content:   "hello",
		CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}

	e, err := event.MakeEvent(event.PostCreated, body)
	if err != nil {
		t.Fatalf("MakeEvent() error = %v", err)
	}

	if e.Type != event.PostCreated {
		t.Errorf("MakeEvent() type = %v, want %v", e.Type, event.PostCreated)
	}

	var got event.PostCreatedBody
	if err := json.Unmarshal(e.Body, &got); err != nil {
		t.Fatalf("Failed to unmarshal event body, err: %v", err)
	}

	if !cmp.Equal(got, body) {
		t.Errorf("Event body mismatch:\n%s", cmp.Diff(body, got))
	}
}

func TestPayloadValidation(t *testing.T) {
	testCases := []struct {
		desc    string
		body    interface{ Validate() error }
		wantErr error
	}{
		{
			desc: "Test if a complete created payload passes",
			body: event.PostCreatedBody{PostId: "p1", UserId: "u1", Content: "hi"},
		},
		{
			desc:    "Test if a created payload without postId is rejected",
			body:    event.PostCreatedBody{UserId: "u1", Content: "hi"},
			wantErr: event.ErrMissingPostId,
		},
		{
			desc: "Test if a complete deleted payload passes",
			body: event.PostDeletedBody{PostId: "p1", UserId: "u1", MediaIds: []string{"m1"}},
		},
		{
			desc:    "Test if a deleted payload without postId is rejected",
			body:    event.PostDeletedBody{UserId: "u1"},
			wantErr: event.ErrMissingPostId,
		},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			if err := tC.body.Validate(); !errors.Is(err, tC.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tC.wantErr)
			}
		})
	}
}

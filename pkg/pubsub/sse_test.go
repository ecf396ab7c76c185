package pubsub

import (
	"context"
	"encoding/json"
	"testing"
	"time"
)

func TestEventBufferReplaysLastN(t *testing.T) {
	pub := NewSSEPublisher()
	defer pub.Close()

	pub.ConfigureTopic(TopicFamilyGraph, TopicConfig{
		BufferSize: 3,
		ReplayAll:  true,
	})

	for i := 1; i <= 5; i++ {
		err := pub.Publish(TopicFamilyGraph, "graph_updated", GraphSummary{People: i})
		if err != nil {
			t.Fatalf("Failed to publish event %d: %v", i, err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	sub, err := pub.Subscribe(ctx, TopicFamilyGraph)
	if err != nil {
		t.Fatalf("Failed to subscribe: %v", err)
	}
	defer sub.Close()

	// Should receive the last 3 of the 5 published events (versions 3-5).
	for received := 0; received < 3; received++ {
		select {
		case event := <-sub.Events():
			expectedVersion := received + 3
			if event.Version != expectedVersion {
				t.Errorf("Expected version %d, got %d", expectedVersion, event.Version)
			}
		case <-time.After(100 * time.Millisecond):
			t.Fatalf("Timeout waiting for event %d", received+1)
		}
	}
}

func TestReplayLastOnly(t *testing.T) {
	pub := NewSSEPublisher()
	defer pub.Close()

	pub.ConfigureTopic(TopicFamilyStatus, TopicConfig{
		BufferSize: 5,
		ReplayAll:  false,
	})

	for _, state := range []string{"loading", "assembling", "ready"} {
		err := pub.Publish(TopicFamilyStatus, "status", FamilyStatus{State: state})
		if err != nil {
			t.Fatalf("Failed to publish %q: %v", state, err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	sub, err := pub.Subscribe(ctx, TopicFamilyStatus)
	if err != nil {
		t.Fatalf("Failed to subscribe: %v", err)
	}
	defer sub.Close()

	// A late subscriber sees only the latest status, not the history.
	select {
	case event := <-sub.Events():
		if event.Version != 3 {
			t.Errorf("Expected version 3, got %d", event.Version)
		}
		var status FamilyStatus
		if err := json.Unmarshal(event.Data, &status); err != nil {
			t.Fatalf("Failed to decode event data: %v", err)
		}
		if status.State != "ready" {
			t.Errorf("Expected state ready, got %q", status.State)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Timeout waiting for event")
	}

	select {
	case event := <-sub.Events():
		t.Errorf("Received unexpected extra event version %d", event.Version)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestNoBufferDeliversOnlyLiveEvents(t *testing.T) {
	pub := NewSSEPublisher()
	defer pub.Close()

	pub.ConfigureTopic(TopicFamilyGraph, TopicConfig{
		BufferSize: 0,
		ReplayAll:  false,
	})

	for i := 1; i <= 3; i++ {
		err := pub.Publish(TopicFamilyGraph, "graph_updated", GraphSummary{People: i})
		if err != nil {
			t.Fatalf("Failed to publish event %d: %v", i, err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	sub, err := pub.Subscribe(ctx, TopicFamilyGraph)
	if err != nil {
		t.Fatalf("Failed to subscribe: %v", err)
	}
	defer sub.Close()

	select {
	case event := <-sub.Events():
		t.Errorf("Received unexpected replayed event version %d", event.Version)
	case <-time.After(50 * time.Millisecond):
	}

	// A live publish after subscription still arrives.
	err = pub.Publish(TopicFamilyGraph, "graph_updated", GraphSummary{People: 4})
	if err != nil {
		t.Fatalf("Failed to publish new event: %v", err)
	}

	select {
	case event := <-sub.Events():
		if event.Version != 4 {
			t.Errorf("Expected version 4, got %d", event.Version)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Timeout waiting for new event")
	}
}

func TestClosedPublisherRejectsUse(t *testing.T) {
	pub := NewSSEPublisher()
	pub.Close()

	if err := pub.Publish(TopicFamilyStatus, "status", FamilyStatus{State: "ready"}); err == nil {
		t.Error("Publish on closed publisher should fail")
	}
	if _, err := pub.Subscribe(context.Background(), TopicFamilyStatus); err == nil {
		t.Error("Subscribe on closed publisher should fail")
	}
}

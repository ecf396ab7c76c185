package pubsub

import (
	"context"
	"encoding/json"
)

// Topics published by the family graph server.
const (
	TopicFamilyStatus = "family_status" // Load/assemble progress
	TopicFamilyGraph  = "family_graph"  // Snapshot summaries after each rebuild
)

// Event is one pub/sub event
type Event struct {
	Topic   string          `json:"topic"`
	Type    string          `json:"type"`    // Event type (e.g., "loading", "assembled", "reloaded")
	Data    json.RawMessage `json:"data"`    // Event payload
	Version int             `json:"version"` // Per-topic version number for ordering
}

// Subscription is one client's view of a topic
type Subscription interface {
	// Topic returns the subscription topic
	Topic() string

	// Events returns a channel for receiving events
	Events() <-chan Event

	// Close closes the subscription
	Close() error
}

// Publisher manages subscriptions and event publishing
type Publisher interface {
	// Subscribe creates a new subscription to a topic.
	// Context cancellation closes the subscription.
	Subscribe(ctx context.Context, topic string) (Subscription, error)

	// Publish sends an event to all subscribers of a topic
	Publish(topic string, eventType string, data interface{}) error

	// Close shuts down the publisher and all subscriptions
	Close() error
}

// FamilyStatus reports load/assemble progress to the frontend.
type FamilyStatus struct {
	State   string `json:"state"` // loading, assembling, ready, error
	Message string `json:"message"`
}

// GraphSummary is the lightweight rebuild notification; clients refetch the
// full snapshot via the API when they receive one.
type GraphSummary struct {
	People     int  `json:"people"`
	Edges      int  `json:"edges"`
	Issues     int  `json:"issues"`
	Components int  `json:"components"`
	Complete   bool `json:"complete"`
}

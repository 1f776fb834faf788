package testutils

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/NguyenHongSon4/app-02/broker"
	"github.com/NguyenHongSon4/app-02/models"
	"github.com/stretchr/testify/require"
)

// RecordingProducer is a broker.Producer that keeps every message it is
// given.
type RecordingProducer struct {
	mu       sync.Mutex
	messages []broker.Message
	Err      error
	Closed   bool
}

func (p *RecordingProducer) Publish(msg broker.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.messages = append(p.messages, msg)
	return nil
}

func (p *RecordingProducer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Closed = true
}

func (p *RecordingProducer) Messages() []broker.Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]broker.Message(nil), p.messages...)
}

// Events decodes every recorded message as a models.Event.
func (p *RecordingProducer) Events(t *testing.T) []models.Event {
	t.Helper()
	var events []models.Event
	for _, msg := range p.Messages() {
		var event models.Event
		require.NoError(t, json.Unmarshal(msg.Data, &event))
		events = append(events, event)
	}
	return events
}

package broker

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type MockProducer struct {
	messages []Message
	err      error
	closed   bool
}

func (m *MockProducer) Publish(msg Message) error {
	if m.err != nil {
		return m.err
	}
	m.messages = append(m.messages, msg)
	return nil
}

func (m *MockProducer) Close() {
	m.closed = true
}

func TestMultiProducerPublishesToAll(t *testing.T) {
	first, second := &MockProducer{}, &MockProducer{}
	multi := MultiProducer{first, second}

	err := multi.Publish(Message{Subject: NoteEventsSubject, Data: []byte("value")})
	assert.NoError(t, err)

	for _, p := range []*MockProducer{first, second} {
		assert.Len(t, p.messages, 1)
		assert.Equal(t, NoteEventsSubject, p.messages[0].Subject)
		assert.Equal(t, "value", string(p.messages[0].Data))
	}
}

func TestMultiProducerKeepsGoingAfterFailure(t *testing.T) {
	failing := &MockProducer{err: errors.New("down")}
	ok := &MockProducer{}
	multi := MultiProducer{failing, ok}

	err := multi.Publish(Message{Subject: "s"})
	assert.EqualError(t, err, "down")
	assert.Len(t, ok.messages, 1)

	multi.Close()
	assert.True(t, failing.closed)
	assert.True(t, ok.closed)
}

func TestEmptyMultiProducer(t *testing.T) {
	assert.NoError(t, MultiProducer{}.Publish(Message{Subject: "s"}))
}

func TestSubjectFor(t *testing.T) {
	assert.Equal(t, NoteEventsSubject, SubjectFor("note"))
	assert.Equal(t, AccountEventsSubject, SubjectFor("account"))
	assert.Equal(t, ImageEventsSubject, SubjectFor("image"))
	assert.Equal(t, "notes.events.other", SubjectFor("other"))
}

func TestNewNatsProducerFailsWithoutServer(t *testing.T) {
	_, err := NewNatsProducer("nats://127.0.0.1:1")
	assert.Error(t, err)
}

package services

import (
	"errors"
	"testing"

	"github.com/NguyenHongSon4/app-02/broker"
	"github.com/NguyenHongSon4/app-02/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventServicePublish(t *testing.T) {
	producer := &testutils.RecordingProducer{}
	svc := NewEventService(producer)

	svc.Publish(broker.NoteDeleted, "note", "delete", "", map[string]string{"id": "n-1"})

	msgs := producer.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, broker.NoteEventsSubject, msgs[0].Subject)

	events := producer.Events(t)
	assert.Equal(t, "note.deleted", events[0].Event)
	assert.Equal(t, "delete", events[0].Operation)
	assert.JSONEq(t, `{"id":"n-1"}`, string(events[0].Data))
}

func TestEventServiceSwallowsFailures(t *testing.T) {
	svc := NewEventService(&testutils.RecordingProducer{Err: errors.New("down")})

	assert.NotPanics(t, func() {
		svc.Publish(broker.NoteCreated, "note", "create", "", map[string]string{"id": "n-1"})
		svc.Publish(broker.NoteCreated, "note", "create", "", make(chan int))
	})
}

func TestNilEventService(t *testing.T) {
	var svc *EventService
	assert.NotPanics(t, func() {
		svc.Publish(broker.NoteCreated, "note", "create", "", nil)
	})
	assert.NotPanics(t, func() {
		NewEventService(nil).Publish(broker.NoteCreated, "note", "create", "", nil)
	})
}

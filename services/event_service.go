package services

import (
	"encoding/json"
	"log"

	"github.com/NguyenHongSon4/app-02/broker"
	"github.com/NguyenHongSon4/app-02/models"
)

type EventServiceInterface interface {
	Publish(eventType broker.EventType, entity, operation, actorID string, data interface{})
}

// EventService announces successful mutations. Delivery is best effort:
// failures are logged and never reach the caller.
type EventService struct {
	producer broker.Producer
}

func NewEventService(producer broker.Producer) *EventService {
	return &EventService{producer: producer}
}

func (s *EventService) Publish(eventType broker.EventType, entity, operation, actorID string, data interface{}) {
	if s == nil || s.producer == nil {
		return
	}

	event, err := models.NewEvent(string(eventType), entity, operation, actorID, data)
	if err != nil {
		log.Printf("Failed to create %s event: %v", eventType, err)
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to serialize %s event: %v", eventType, err)
		return
	}

	if err := s.producer.Publish(broker.Message{Subject: broker.SubjectFor(entity), Data: payload}); err != nil {
		log.Printf("Failed to publish %s event %s: %v", eventType, event.ID, err)
	}
}

// publicAccount is the part of an account that is safe to put on the wire.
func publicAccount(a models.Account) map[string]interface{} {
	return map[string]interface{}{
		"id":        a.ID,
		"userId":    a.UserID,
		"username":  a.Username,
		"status":    a.Status,
		"lastLogin": a.LastLogin,
	}
}

var EventServiceInstance EventServiceInterface

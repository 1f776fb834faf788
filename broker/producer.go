package broker

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/nats-io/nats.go"
)

type Message struct {
	Subject string
	Data    []byte
}

// Producer publishes serialized events.
type Producer interface {
	Publish(msg Message) error
	Close()
}

type NatsProducer struct {
	conn *nats.Conn
}

func NewNatsProducer(url string) (*NatsProducer, error) {
	conn, err := nats.Connect(url,
		nats.Name("notes-backend"),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Printf("NATS disconnected: %v", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Printf("NATS reconnected to %s", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	log.Printf("NATS producer connected to %s", conn.ConnectedUrl())
	return &NatsProducer{conn: conn}, nil
}

func (p *NatsProducer) Publish(msg Message) error {
	return p.conn.Publish(msg.Subject, msg.Data)
}

func (p *NatsProducer) Close() {
	if err := p.conn.Drain(); err != nil {
		log.Printf("Failed to drain NATS connection: %v", err)
		p.conn.Close()
	}
}

// MultiProducer fans every message out to all of its producers.
type MultiProducer []Producer

func (m MultiProducer) Publish(msg Message) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(msg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m MultiProducer) Close() {
	for _, p := range m {
		p.Close()
	}
}

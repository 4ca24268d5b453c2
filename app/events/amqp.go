package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"storenews/app/logger"
)

// AMQPForwarder shares change events between storefront nodes. Every node
// publishes its bus events to a fanout exchange and receives the events of the
// other nodes on its own exclusive queue.
type AMQPForwarder struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	queue    string
	nodeID   string
	wg       sync.WaitGroup
}

// NewAMQPForwarder dials url, declares the fanout exchange and binds a
// server-named queue for this node to it.
func NewAMQPForwarder(url, exchange string) (*AMQPForwarder, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	fail := func(format string, err error) (*AMQPForwarder, error) {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf(format, err)
	}

	err = ch.ExchangeDeclare(
		exchange,
		amqp.ExchangeFanout,
		true,  // durable
		false, // autoDelete
		false, // internal
		false, // noWait
		nil,
	)
	if err != nil {
		return fail("failed to declare exchange: %w", err)
	}

	q, err := ch.QueueDeclare(
		"",    // server-named
		false, // durable
		true,  // autoDelete
		true,  // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		return fail("failed to declare queue: %w", err)
	}

	if err := ch.QueueBind(q.Name, "", exchange, false, nil); err != nil {
		return fail("failed to bind queue: %w", err)
	}

	return &AMQPForwarder{
		conn:     conn,
		ch:       ch,
		exchange: exchange,
		queue:    q.Name,
		nodeID:   uuid.NewString(),
	}, nil
}

// Handle is a bus Handler. Broker failures are logged, never returned.
func (f *AMQPForwarder) Handle(ctx context.Context, e Event) {
	msg, err := EncodeMessage(f.nodeID, e)
	if err != nil {
		logger.Log.Errorf("encode event: %v", err)
		return
	}

	err = f.ch.PublishWithContext(
		ctx,
		f.exchange, // exchange
		"",         // routing key
		false,      // mandatory
		false,      // immediate
		msg,
	)
	if err != nil {
		logger.WithFields(logger.Fields{"exchange": f.exchange, "entity": e.Entity}).Errorf("forward event: %v", err)
	}
}

// Consume delivers the events published by other nodes to h until Close.
// h must not publish them on the bus again.
func (f *AMQPForwarder) Consume(h Handler) error {
	msgs, err := f.ch.Consume(
		f.queue,
		"",    // consumer
		true,  // autoAck
		true,  // exclusive
		false, // noLocal
		false, // noWait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to consume: %w", err)
	}

	logger.Log.Infof("Consuming events from exchange %s on queue %s", f.exchange, f.queue)

	f.wg.Add(1)
	go func() {
		defer f.wg.Done()
		for msg := range msgs {
			f.dispatch(context.Background(), msg, h)
		}
	}()
	return nil
}

func (f *AMQPForwarder) dispatch(ctx context.Context, msg amqp.Delivery, h Handler) {
	if msg.AppId == f.nodeID {
		return
	}

	e, err := DecodeMessage(msg.Body)
	if err != nil {
		logger.WithFields(logger.Fields{"type": msg.Type}).Warnf("dropping event: %v", err)
		return
	}

	logger.WithFields(logger.Fields{
		"node":   msg.AppId,
		"entity": e.Entity,
		"action": e.Action,
		"id":     e.ID,
	}).Debug("received event")
	h(ctx, e)
}

// Close stops consuming and closes the broker connection.
func (f *AMQPForwarder) Close() {
	f.ch.Close()
	f.conn.Close()
	f.wg.Wait()
}

// EncodeMessage renders an event published by node as a JSON message.
func EncodeMessage(node string, e Event) (amqp.Publishing, error) {
	body, err := json.Marshal(e)
	if err != nil {
		return amqp.Publishing{}, err
	}
	return amqp.Publishing{
		DeliveryMode: amqp.Transient,
		ContentType:  "application/json",
		AppId:        node,
		Type:         string(e.Entity) + "." + string(e.Action),
		Body:         body,
	}, nil
}

// DecodeMessage parses the body of a message produced by EncodeMessage.
func DecodeMessage(body []byte) (Event, error) {
	var e Event
	if err := json.Unmarshal(body, &e); err != nil {
		return Event{}, fmt.Errorf("failed to decode event: %w", err)
	}
	return e, nil
}

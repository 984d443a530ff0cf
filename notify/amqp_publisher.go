// Package notify forwards match events to the message broker consumed by the
// push-notification workers.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
)

const routingKeyPrefix = "match."

// Event is the body published for every live match event.
type Event struct {
	MatchID    string      `json:"match_id"`
	Event      string      `json:"event"`
	Payload    interface{} `json:"payload"`
	OccurredAt time.Time   `json:"occurred_at"`
}

// AMQPPublisher publishes match events to a topic exchange with routing key
// "match.<event>". It satisfies live.Broadcaster.
type AMQPPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	logger   *slog.Logger
	now      func() time.Time

	mu sync.Mutex // amqp.Channel is not safe for concurrent publishing
}

func DialAMQP(url, exchange string, logger *slog.Logger) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to AMQP broker: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open AMQP channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}

	p := &AMQPPublisher{
		conn:     conn,
		channel:  ch,
		exchange: exchange,
		logger:   logger,
		now:      time.Now,
	}
	go p.watchClose()
	return p, nil
}

func (p *AMQPPublisher) watchClose() {
	closed := p.conn.NotifyClose(make(chan *amqp.Error, 1))
	if err, ok := <-closed; ok && err != nil {
		p.logger.Error("AMQP connection closed", slog.String("reason", err.Reason), slog.Int("code", err.Code))
	}
}

func (p *AMQPPublisher) Emit(_ context.Context, matchID string, event string, payload interface{}) error {
	body, err := json.Marshal(Event{MatchID: matchID, Event: event, Payload: payload, OccurredAt: p.now().UTC()})
	if err != nil {
		return fmt.Errorf("failed to encode notification event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.Publish(p.exchange, routingKeyPrefix+event, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Transient,
		MessageId:    uuid.NewString(),
		Timestamp:    p.now(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish %s for match %s: %w", event, matchID, err)
	}
	return nil
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.channel.Close(); err != nil {
		p.conn.Close()
		return err
	}
	return p.conn.Close()
}

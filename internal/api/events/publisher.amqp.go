package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/YuvrajBundele11/OutboundAPI/internal/logger"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// publishTimeout giới hạn thời gian publish một message
const publishTimeout = 5 * time.Second

// amqpChannel là phần của *amqp.Channel mà publisher dùng
type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// ChangeMessage là body JSON của message gửi lên exchange
type ChangeMessage struct {
	Collection string      `json:"collection"`
	Operation  string      `json:"operation"`
	Document   interface{} `json:"document"`
	OccurredAt time.Time   `json:"occurredAt"`
}

// AMQPPublisher đẩy DataChangeEvent lên một topic exchange của RabbitMQ.
// Routing key có dạng "<collection>.<operation>", ví dụ "account.insert".
type AMQPPublisher struct {
	conn     *amqp.Connection
	ch       amqpChannel
	exchange string
}

// NewAMQPPublisher kết nối RabbitMQ và khai báo exchange (topic, durable)
func NewAMQPPublisher(url, exchange string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}

	return &AMQPPublisher{conn: conn, ch: ch, exchange: exchange}, nil
}

// Publish gửi một event lên exchange
func (p *AMQPPublisher) Publish(ctx context.Context, e DataChangeEvent) error {
	body, err := json.Marshal(ChangeMessage{
		Collection: e.CollectionName,
		Operation:  e.Operation,
		Document:   e.Document,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	return p.ch.PublishWithContext(ctx, p.exchange, RoutingKey(e), false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    time.Now(),
		Body:         body,
	})
}

// Handle là DataChangeHandler dùng với OnDataChanged; lỗi publish chỉ được log
func (p *AMQPPublisher) Handle(ctx context.Context, e DataChangeEvent) {
	if err := p.Publish(ctx, e); err != nil {
		logger.WithModuleAndCollection("events", e.CollectionName).
			WithError(err).
			WithField("operation", e.Operation).
			Warn("Không publish được sự kiện lên RabbitMQ")
	}
}

// Close đóng channel và connection
func (p *AMQPPublisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// RoutingKey trả về routing key của event
func RoutingKey(e DataChangeEvent) string {
	return e.CollectionName + "." + e.Operation
}

package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shaiso/Vitrina/internal/domain"
)

// MessageType — тип сообщения в очереди.
type MessageType string

// Типы сообщений.
const (
	MessageTypeRunTrigger MessageType = "run.trigger"
	MessageTypeRunReport  MessageType = "run.report"
)

// Publisher публикует сообщения в RabbitMQ.
type Publisher struct {
	conn   *Connection
	logger *slog.Logger
}

// NewPublisher создаёт новый Publisher.
func NewPublisher(conn *Connection, logger *slog.Logger) *Publisher {
	return &Publisher{
		conn:   conn,
		logger: logger,
	}
}

// Message — сообщение для публикации.
type Message struct {
	// ID — уникальный идентификатор сообщения.
	ID string `json:"id"`

	// Type — тип сообщения.
	Type MessageType `json:"type"`

	// Payload — полезная нагрузка.
	Payload any `json:"payload"`

	// Timestamp — время создания.
	Timestamp time.Time `json:"timestamp"`
}

// RunTriggerPayload — команда немедленного прогона.
type RunTriggerPayload struct {
	// RequestedBy — кто запросил запуск (для лога).
	RequestedBy string `json:"requested_by,omitempty"`
}

// RunReportPayload — отчёт завершённого прогона для интеграций.
// Причины неудач не включаются, только какие товары не прошли.
type RunReportPayload struct {
	StartedAt  time.Time                  `json:"started_at"`
	FinishedAt time.Time                  `json:"finished_at"`
	Manual     bool                       `json:"manual"`
	Summary    string                     `json:"summary"`
	Succeeded  []domain.TransitionOutcome `json:"succeeded,omitempty"`
	Failed     []domain.TransitionFailure `json:"failed,omitempty"`
}

// Publish публикует сообщение в указанный exchange с routing key.
func (p *Publisher) Publish(ctx context.Context, exchange Exchange, routingKey RoutingKey, msg *Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	return p.conn.WithChannel(ctx, func(ch *amqp.Channel) error {
		err := ch.PublishWithContext(
			ctx,
			string(exchange),   // exchange
			string(routingKey), // routing key
			false,
			false,
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent, // сообщение переживёт рестарт RabbitMQ
				MessageId:    msg.ID,
				Timestamp:    msg.Timestamp,
				Body:         body,
			},
		)
		if err != nil {
			return fmt.Errorf("publish to %s/%s: %w", exchange, routingKey, err)
		}

		p.logger.Debug("published message",
			"exchange", exchange,
			"routing_key", routingKey,
			"message_id", msg.ID,
			"type", msg.Type,
		)

		return nil
	})
}

// PublishRunTrigger публикует команду немедленного прогона.
// Потребитель: scheduler.
func (p *Publisher) PublishRunTrigger(ctx context.Context, requestedBy string) error {
	msg := &Message{
		ID:        uuid.New().String(),
		Type:      MessageTypeRunTrigger,
		Payload:   RunTriggerPayload{RequestedBy: requestedBy},
		Timestamp: time.Now(),
	}

	return p.Publish(ctx, ExchangeScheduler, RoutingKeyTrigger, msg)
}

// PublishRunReport публикует отчёт завершённого прогона.
// Потребители: интеграции уведомлений.
func (p *Publisher) PublishRunReport(ctx context.Context, report *domain.RunReport) error {
	msg := &Message{
		ID:   uuid.New().String(),
		Type: MessageTypeRunReport,
		Payload: RunReportPayload{
			StartedAt:  report.StartedAt,
			FinishedAt: report.FinishedAt,
			Manual:     report.Manual,
			Summary:    report.Summary(),
			Succeeded:  report.Succeeded,
			Failed:     report.Failed,
		},
		Timestamp: time.Now(),
	}

	return p.Publish(ctx, ExchangeReports, RoutingKeyCompleted, msg)
}

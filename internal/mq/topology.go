package mq

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Exchange — тип для имени обменника.
type Exchange string

// Queue — тип для имени очереди.
type Queue string

// RoutingKey — тип для ключа маршрутизации.
type RoutingKey string

// Exchanges — имена обменников.
const (
	ExchangeScheduler Exchange = "vitrina.scheduler"
	ExchangeReports   Exchange = "vitrina.reports"
)

// Queues — имена очередей.
const (
	QueueSchedulerTrigger Queue = "scheduler.trigger"
	QueueReportsCompleted Queue = "reports.completed"
)

// Routing keys.
const (
	RoutingKeyTrigger   RoutingKey = "trigger"
	RoutingKeyCompleted RoutingKey = "completed"
)

// SetupTopology объявляет обменники, очереди и привязки. Идемпотентна,
// вызывается при старте каждым процессом, который трогает брокер.
func SetupTopology(ctx context.Context, conn *Connection) error {
	return conn.WithChannel(ctx, func(ch *amqp.Channel) error {
		if err := declareExchanges(ch); err != nil {
			return err
		}
		if err := declareQueues(ch); err != nil {
			return err
		}
		return bindQueues(ch)
	})
}

// declareExchanges создаёт обменники.
func declareExchanges(ch *amqp.Channel) error {
	for _, name := range []Exchange{ExchangeScheduler, ExchangeReports} {
		err := ch.ExchangeDeclare(
			string(name), // name
			"direct",     // type
			true,         // durable
			false,        // auto-deleted
			false,        // internal
			false,        // no-wait
			nil,          // arguments
		)
		if err != nil {
			return fmt.Errorf("declare exchange %s: %w", name, err)
		}
	}
	return nil
}

// declareQueues создаёт очереди.
func declareQueues(ch *amqp.Channel) error {
	for _, name := range []Queue{QueueSchedulerTrigger, QueueReportsCompleted} {
		_, err := ch.QueueDeclare(
			string(name), // name
			true,         // durable
			false,        // delete when unused
			false,        // exclusive
			false,        // no-wait
			nil,          // arguments
		)
		if err != nil {
			return fmt.Errorf("declare queue %s: %w", name, err)
		}
	}
	return nil
}

// bindQueues привязывает очереди к обменникам.
func bindQueues(ch *amqp.Channel) error {
	bindings := []struct {
		queue      Queue
		routingKey RoutingKey
		exchange   Exchange
	}{
		{QueueSchedulerTrigger, RoutingKeyTrigger, ExchangeScheduler},
		{QueueReportsCompleted, RoutingKeyCompleted, ExchangeReports},
	}

	for _, b := range bindings {
		err := ch.QueueBind(
			string(b.queue),      // queue name
			string(b.routingKey), // routing key
			string(b.exchange),   // exchange
			false,                // no-wait
			nil,                  // arguments
		)
		if err != nil {
			return fmt.Errorf("bind queue %s to %s: %w", b.queue, b.exchange, err)
		}
	}
	return nil
}

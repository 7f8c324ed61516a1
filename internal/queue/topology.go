package queue

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"OnShift/storage/mq"
)

const (
	EventsExchange  = "timeclock.events"
	DelayedExchange = "timeclock.delayed"

	SessionEndingQueue = "timeclock.session_ending"
	DailyResetQueue    = "timeclock.daily_reset"
	ReminderQueue      = "timeclock.reminder"
)

// EnsureTopology declares exchanges, queues and bindings. Safe to run
// from every process at startup; declarations are idempotent.
func EnsureTopology() error {
	conn := mq.Connection()
	if conn == nil {
		return fmt.Errorf("RabbitMQ connection is nil")
	}

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open topology channel: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(EventsExchange, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare events exchange: %w", err)
	}

	// Requires the rabbitmq_delayed_message_exchange plugin.
	err = ch.ExchangeDeclare(DelayedExchange, "x-delayed-message", true, false, false, false, amqp.Table{
		"x-delayed-type": "direct",
	})
	if err != nil {
		return fmt.Errorf("failed to declare delayed exchange: %w", err)
	}

	bindings := []struct {
		queue    string
		exchange string
	}{
		{SessionEndingQueue, EventsExchange},
		{DailyResetQueue, EventsExchange},
		{ReminderQueue, DelayedExchange},
	}

	for _, b := range bindings {
		if _, err := ch.QueueDeclare(b.queue, true, false, false, false, nil); err != nil {
			return fmt.Errorf("failed to declare queue %s: %w", b.queue, err)
		}
		if err := ch.QueueBind(b.queue, b.queue, b.exchange, false, nil); err != nil {
			return fmt.Errorf("failed to bind queue %s: %w", b.queue, err)
		}
	}

	return nil
}

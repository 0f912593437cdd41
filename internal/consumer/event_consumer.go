package consumer

import (
	"encoding/json"

	"github.com/NyuntSinHtet96/event-registeration-bot/internal/models"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EventConsumer syncs event directory rows pushed by the external admin tool.
// The registration core itself never writes events.
type EventConsumer struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewEventConsumer(db *gorm.DB, log zerolog.Logger) *EventConsumer {
	return &EventConsumer{db: db, log: log}
}

func (ec *EventConsumer) Start(msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			ec.handleMessage(msg)
		}
		ec.log.Info().Msg("event consumer channel closed")
	}()
}

func (ec *EventConsumer) handleMessage(msg amqp.Delivery) {
	var event models.Event
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		ec.log.Error().Err(err).Msg("failed to unmarshal event update")
		msg.Nack(false, false)
		return
	}
	if event.ID == "" {
		ec.log.Error().Msg("event update without id, dropping")
		msg.Nack(false, false)
		return
	}

	result := ec.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "start_time", "location", "capacity", "status"}),
	}).Create(&event)

	if result.Error != nil {
		ec.log.Error().Err(result.Error).Str("event_id", event.ID).Msg("failed to upsert event")
		msg.Nack(false, true) // requeue
		return
	}

	ec.log.Info().Str("event_id", event.ID).Str("title", event.Title).Msg("synced event")
	msg.Ack(false)
}

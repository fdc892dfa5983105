package domain

import "context"

type EventRepository interface {
	// Save publishes the events for the aggregate identified by id on the
	// given topic and dispatches them to the registered handlers.
	Save(ctx context.Context, topic, id string, events []Event) error
	RegisterEventsHandler(topic string, handler func(events []Event))
	ClearRegisteredHandlers(topics ...string)
	Close()
}

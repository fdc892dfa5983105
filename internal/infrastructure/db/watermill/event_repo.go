package watermilldb

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/mercatohq/marketd/internal/core/domain"
	log "github.com/sirupsen/logrus"
)

type subscriber struct {
	topic   string
	handler func(events []domain.Event)
}

type eventRepository struct {
	publisher message.Publisher

	subscribers    map[string][]subscriber // topic -> subscribers
	subscriberLock *sync.Mutex
}

func NewWatermillEventRepository(publisher message.Publisher) domain.EventRepository {
	return &eventRepository{
		publisher:      publisher,
		subscribers:    make(map[string][]subscriber),
		subscriberLock: &sync.Mutex{},
	}
}

func (e *eventRepository) ClearRegisteredHandlers(topics ...string) {
	e.subscriberLock.Lock()
	defer e.subscriberLock.Unlock()

	if len(topics) == 0 {
		e.subscribers = make(map[string][]subscriber)
		return
	}

	for _, topic := range topics {
		delete(e.subscribers, topic)
	}
}

func (e *eventRepository) Close() {
	//nolint:errcheck
	e.publisher.Close()
}

func (e *eventRepository) RegisterEventsHandler(
	topic string, handler func(events []domain.Event),
) {
	e.subscriberLock.Lock()
	defer e.subscriberLock.Unlock()

	if _, ok := e.subscribers[topic]; !ok {
		e.subscribers[topic] = make([]subscriber, 0)
	}

	e.subscribers[topic] = append(e.subscribers[topic], subscriber{
		topic:   topic,
		handler: handler,
	})
}

func (e *eventRepository) Save(
	ctx context.Context, topic string, id string, events []domain.Event,
) error {
	payloads, err := e.publish(topic, id, events)
	if err != nil {
		return err
	}
	// dispatch events to subscribers
	if err := e.dispatch(topic, payloads); err != nil {
		log.WithError(err).Error("failed to dispatch saved events")
	}

	return nil
}

// dispatch hands the published events to the topic's handlers. Handlers get
// copies decoded from the wire payloads, never the caller's values.
func (e *eventRepository) dispatch(topic string, payloads [][]byte) error {
	events := make([]domain.Event, 0, len(payloads))
	for _, payload := range payloads {
		event, err := deserializeEvent(payload)
		if err != nil {
			log.WithError(err).Warnf("failed to deserialize event: %s", string(payload))
			continue
		}
		events = append(events, event)
	}

	if len(events) == 0 {
		return nil
	}

	// run the handlers in go routines
	e.subscriberLock.Lock()
	defer e.subscriberLock.Unlock()
	for _, subscriber := range e.subscribers[topic] {
		go subscriber.handler(events)
	}
	return nil
}

func (e *eventRepository) publish(
	topic, id string, events []domain.Event,
) ([][]byte, error) {
	watermillMessages := make([]*message.Message, 0, len(events))
	payloads := make([][]byte, 0, len(events))
	for _, event := range events {
		payload, err := json.Marshal(event)
		if err != nil {
			continue
		}

		msg := message.NewMessage(watermill.NewUUID(), payload)
		msg.Metadata.Set("id", id)
		watermillMessages = append(watermillMessages, msg)
		payloads = append(payloads, payload)
	}

	if err := e.publisher.Publish(topic, watermillMessages...); err != nil {
		return nil, err
	}
	return payloads, nil
}

func deserializeEvent(buf []byte) (domain.Event, error) {
	var eventType struct {
		Type domain.EventType
	}

	if err := json.Unmarshal(buf, &eventType); err != nil {
		return nil, err
	}

	switch eventType.Type {
	case domain.EventTypeOfferSet:
		var event = domain.OfferSet{}
		if err := json.Unmarshal(buf, &event); err == nil {
			return event, nil
		}
	case domain.EventTypeOfferCanceled:
		var event = domain.OfferCanceled{}
		if err := json.Unmarshal(buf, &event); err == nil {
			return event, nil
		}
	case domain.EventTypeOfferUpdated:
		var event = domain.OfferUpdated{}
		if err := json.Unmarshal(buf, &event); err == nil {
			return event, nil
		}
	case domain.EventTypeBidAccepted:
		var event = domain.BidAccepted{}
		if err := json.Unmarshal(buf, &event); err == nil {
			return event, nil
		}
	case domain.EventTypeBidRejected:
		var event = domain.BidRejected{}
		if err := json.Unmarshal(buf, &event); err == nil {
			return event, nil
		}
	case domain.EventTypeBidCanceled:
		var event = domain.BidCanceled{}
		if err := json.Unmarshal(buf, &event); err == nil {
			return event, nil
		}
	case domain.EventTypePurchaseCompleted:
		var event = domain.PurchaseCompleted{}
		if err := json.Unmarshal(buf, &event); err == nil {
			return event, nil
		}
	case domain.EventTypeDeposited:
		var event = domain.Deposited{}
		if err := json.Unmarshal(buf, &event); err == nil {
			return event, nil
		}
	case domain.EventTypeWithdrawn:
		var event = domain.Withdrawn{}
		if err := json.Unmarshal(buf, &event); err == nil {
			return event, nil
		}
	case domain.EventTypeOwnershipTransferred:
		var event = domain.OwnershipTransferred{}
		if err := json.Unmarshal(buf, &event); err == nil {
			return event, nil
		}
	}

	return nil, fmt.Errorf("unknown event")
}

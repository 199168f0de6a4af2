package websocket

import (
	"log"
	"strings"
	"sync"

	"github.com/dom/touchline-tactician/internal/domain"
	"github.com/google/uuid"
)

type subscription struct {
	client *Client
	topic  string
}

// Hub fans plan events out to the clients subscribed to each plan.
type Hub struct {
	clients     map[*Client]bool
	topics      map[string]map[*Client]bool
	register    chan *Client
	unregister  chan *Client
	subscribe   chan subscription
	unsubscribe chan subscription
	events      chan domain.PlanEvent
	stop        chan struct{}
	done        chan struct{} // closed when Run() exits
	stopped     bool
	stopOnce    sync.Once
	mu          sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:     make(map[*Client]bool),
		topics:      make(map[string]map[*Client]bool),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		subscribe:   make(chan subscription),
		unsubscribe: make(chan subscription),
		events:      make(chan domain.PlanEvent, 64),
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}
}

func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.stop:
			h.mu.Lock()
			h.stopped = true
			for client := range h.clients {
				client.Close()
			}
			h.clients = make(map[*Client]bool)
			h.topics = make(map[string]map[*Client]bool)
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			if !h.stopped {
				h.clients[client] = true
			}
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				for topic, subs := range h.topics {
					delete(subs, client)
					if len(subs) == 0 {
						delete(h.topics, topic)
					}
				}
				client.Close()
			}
			h.mu.Unlock()

		case sub := <-h.subscribe:
			h.mu.Lock()
			if _, ok := h.clients[sub.client]; ok {
				if h.topics[sub.topic] == nil {
					h.topics[sub.topic] = make(map[*Client]bool)
				}
				h.topics[sub.topic][sub.client] = true
			}
			h.mu.Unlock()
			sub.client.sendMessage(MessageTypeSubscribed, SubscriptionPayload{PlanID: sub.topic})

		case sub := <-h.unsubscribe:
			h.mu.Lock()
			if subs, ok := h.topics[sub.topic]; ok {
				delete(subs, sub.client)
				if len(subs) == 0 {
					delete(h.topics, sub.topic)
				}
			}
			h.mu.Unlock()
			sub.client.sendMessage(MessageTypeUnsubscribed, SubscriptionPayload{PlanID: sub.topic})

		case event := <-h.events:
			h.broadcast(event)
		}
	}
}

// Stop closes every client and waits for Run to return.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.stop) })
	<-h.done
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		client.Close()
	}
}

// PublishPlanEvent queues an event for delivery. It never blocks the caller:
// when the queue is full the event is dropped and logged.
func (h *Hub) PublishPlanEvent(event domain.PlanEvent) {
	select {
	case h.events <- event:
	case <-h.done:
	default:
		log.Printf("ERROR [hub.PublishPlanEvent] planID=%s: event queue full, dropping %s", event.PlanID, event.Type)
	}
}

// SubscriberCount reports how many clients follow topic.
func (h *Hub) SubscriberCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}

func (h *Hub) broadcast(event domain.PlanEvent) {
	msg, err := newPlanEventMessage(event)
	if err != nil {
		log.Printf("ERROR [hub.broadcast] planID=%s: %v", event.PlanID, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	recipients := make(map[*Client]bool)
	for client := range h.topics[event.PlanID.String()] {
		recipients[client] = true
	}
	for client := range h.topics[AllPlans] {
		recipients[client] = true
	}
	for client := range recipients {
		client.deliver(*msg)
	}
}

// normalizeTopic accepts "*" or a plan id in any UUID spelling.
func normalizeTopic(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == AllPlans {
		return AllPlans, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", false
	}
	return id.String(), true
}

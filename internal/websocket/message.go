package websocket

import (
	"encoding/json"
	"time"

	"github.com/dom/touchline-tactician/internal/domain"
	"github.com/google/uuid"
)

type MessageType string

const (
	// Client to Server
	MessageTypeSubscribe   MessageType = "SUBSCRIBE"
	MessageTypeUnsubscribe MessageType = "UNSUBSCRIBE"
	MessageTypePing        MessageType = "PING"

	// Server to Client
	MessageTypeSubscribed   MessageType = "SUBSCRIBED"
	MessageTypeUnsubscribed MessageType = "UNSUBSCRIBED"
	MessageTypePlanSaved    MessageType = "PLAN_SAVED"
	MessageTypePlanDeleted  MessageType = "PLAN_DELETED"
	MessageTypePong         MessageType = "PONG"
	MessageTypeError        MessageType = "ERROR"
)

// AllPlans is the subscription topic that receives every plan event.
const AllPlans = "*"

type Message struct {
	Type      MessageType     `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp int64           `json:"timestamp"`
	Seq       int             `json:"seq"`
}

func NewMessage(msgType MessageType, payload interface{}) (*Message, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      msgType,
		Payload:   payloadBytes,
		Timestamp: time.Now().UnixMilli(),
	}, nil
}

// Client to Server payloads

type SubscribePayload struct {
	PlanID string `json:"planId"`
}

// Server to Client payloads

type SubscriptionPayload struct {
	PlanID string `json:"planId"`
}

type PlanEventPayload struct {
	PlanID     string `json:"planId"`
	CoachID    string `json:"coachId,omitempty"`
	Filename   string `json:"filename"`
	Name       string `json:"name,omitempty"`
	ModifiedAt string `json:"modifiedAt,omitempty"`
	OccurredAt int64  `json:"occurredAt"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func messageTypeFor(t domain.PlanEventType) MessageType {
	if t == domain.PlanEventDeleted {
		return MessageTypePlanDeleted
	}
	return MessageTypePlanSaved
}

func newPlanEventMessage(event domain.PlanEvent) (*Message, error) {
	var coachID string
	if event.CoachID != uuid.Nil {
		coachID = event.CoachID.String()
	}
	return NewMessage(messageTypeFor(event.Type), PlanEventPayload{
		PlanID:     event.PlanID.String(),
		CoachID:    coachID,
		Filename:   event.Filename,
		Name:       event.Name,
		ModifiedAt: event.ModifiedAt,
		OccurredAt: event.OccurredAt.UnixMilli(),
	})
}

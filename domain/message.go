package domain

import (
	"encoding/json"
	"io"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const MaxMessageLength = 2000

type MessageType string

const (
	TextMessage     MessageType = "text"
	ImageMessage    MessageType = "image"
	DocumentMessage MessageType = "document"
	SystemMessage   MessageType = "system"
)

type Attachment struct {
	URL  string `bson:"url" json:"url"`
	Type string `bson:"type" json:"type"`
	Name string `bson:"name" json:"name"`
	Size int64  `bson:"size" json:"size"`
}

type Message struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	SenderID   primitive.ObjectID  `bson:"sender_id" json:"sender_id"`
	ReceiverID primitive.ObjectID  `bson:"receiver_id" json:"receiver_id"`
	PropertyID *primitive.ObjectID `bson:"property_id,omitempty" json:"property_id,omitempty"`
	BookingID  *primitive.ObjectID `bson:"booking_id,omitempty" json:"booking_id,omitempty"`

	Text        string       `bson:"text" json:"text" validate:"required,max=2000"`
	MessageType MessageType  `bson:"message_type" json:"message_type"`
	Attachments []Attachment `bson:"attachments,omitempty" json:"attachments,omitempty"`

	IsRead bool       `bson:"is_read" json:"is_read"`
	ReadAt *time.Time `bson:"read_at,omitempty" json:"read_at,omitempty"`

	ConversationID string `bson:"conversation_id" json:"conversation_id"`

	SenderName string   `bson:"sender_name" json:"sender_name"`
	SenderRole UserRole `bson:"sender_role" json:"sender_role"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

type Messages []*Message

// ConversationID builds the canonical key grouping messages between two
// fixed participants. Identifiers are sorted so the key is independent of
// who initiates the conversation.
func ConversationID(userA, userB primitive.ObjectID) string {
	a, b := userA.Hex(), userB.Hex()
	if b < a {
		a, b = b, a
	}
	return a + "_" + b
}

func (o *Message) ToJSON(w io.Writer) error {
	e := json.NewEncoder(w)
	return e.Encode(o)
}

func (o *Message) FromJSON(r io.Reader) error {
	d := json.NewDecoder(r)
	return d.Decode(o)
}

func (o *Messages) ToJSON(w io.Writer) error {
	e := json.NewEncoder(w)
	return e.Encode(o)
}

package domain

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/oklog/ulid/v2"
)

// MaxAttachmentSize is the largest integer a float64 holds exactly. Stream
// frames carry numbers as float64, so larger sizes cannot arrive intact.
const MaxAttachmentSize = 1<<53 - 1

// Attachment is opaque file metadata plus a content reference. Size is in
// bytes and must lie in [0, MaxAttachmentSize].
type Attachment struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
	Data string `json:"data,omitempty"`
}

// Validate accepts a nil attachment.
func (a *Attachment) Validate() error {
	if a == nil {
		return nil
	}
	if a.Size < 0 || a.Size > MaxAttachmentSize {
		return fmt.Errorf("attachment size %d out of range: %w", a.Size, ErrInvalidAttachment)
	}
	return nil
}

type Message struct {
	ID          string               `json:"id"`
	Sender      string               `json:"sender"`
	SenderID    string               `json:"senderId"`
	RoomID      string               `json:"roomId,omitempty"`
	RecipientID string               `json:"recipientId,omitempty"`
	Text        string               `json:"message"`
	Attachment  *Attachment          `json:"fileData,omitempty"`
	Timestamp   time.Time            `json:"timestamp"`
	Private     bool                 `json:"isPrivate,omitempty"`
	Reactions   map[string][]string  `json:"reactions"`
	ReadBy      map[string]time.Time `json:"readBy"`
}

func NewMessage(sender, senderID, roomID, text string, attachment *Attachment) Message {
	return Message{
		Sender:     sender,
		SenderID:   senderID,
		RoomID:     roomID,
		Text:       text,
		Attachment: attachment,
	}
}

func NewPrivateMessage(sender, senderID, recipientID, text string, attachment *Attachment, at time.Time) Message {
	return Message{
		ID:          NewMessageID(at),
		Sender:      sender,
		SenderID:    senderID,
		RecipientID: recipientID,
		Text:        text,
		Attachment:  attachment,
		Timestamp:   at,
		Private:     true,
		Reactions:   map[string][]string{},
		ReadBy:      map[string]time.Time{},
	}
}

func NewMessageID(at time.Time) string {
	return ulid.MustNew(ulid.Timestamp(at), ulid.DefaultEntropy()).String()
}

func (m Message) IsEmpty() bool {
	return m.Text == "" && m.Attachment == nil
}

// Clone returns a copy that shares no mutable state with m.
func (m Message) Clone() Message {
	c := m
	if m.Attachment != nil {
		a := *m.Attachment
		c.Attachment = &a
	}
	c.Reactions = make(map[string][]string, len(m.Reactions))
	for symbol, ids := range m.Reactions {
		c.Reactions[symbol] = slices.Clone(ids)
	}
	c.ReadBy = maps.Clone(m.ReadBy)
	if c.ReadBy == nil {
		c.ReadBy = map[string]time.Time{}
	}
	return c
}

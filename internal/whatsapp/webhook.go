package whatsapp

// Webhook payload shapes for the Meta WhatsApp Business API. Only the
// fields this service reads are modeled.

const (
	// ObjectBusinessAccount is the payload object type for message webhooks.
	ObjectBusinessAccount = "whatsapp_business_account"
	// FieldMessages is the change field carrying inbound messages.
	FieldMessages = "messages"
	// TypeText is the only inbound message type that is answered.
	TypeText = "text"
)

// Payload is the top-level webhook delivery envelope.
type Payload struct {
	Object string  `json:"object"`
	Entry  []Entry `json:"entry"`
}

// Entry is one business-account entry within a delivery.
type Entry struct {
	ID      string   `json:"id"`
	Changes []Change `json:"changes"`
}

// Change is one field change within an entry.
type Change struct {
	Field string `json:"field"`
	Value Value  `json:"value"`
}

// Value carries the messages of a change.
type Value struct {
	MessagingProduct string    `json:"messaging_product"`
	Messages         []Message `json:"messages"`
}

// Message is one inbound message.
type Message struct {
	From      string `json:"from" validate:"required"`
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Type      string `json:"type" validate:"required"`
	Text      *Text  `json:"text,omitempty"`
}

// Text is the body of a text message.
type Text struct {
	Body string `json:"body"`
}

// Body returns the text body, empty for non-text messages.
func (m Message) Body() string {
	if m.Text == nil {
		return ""
	}
	return m.Text.Body
}

// InboundMessages flattens the payload into the messages it carries.
// Non-message changes and foreign objects yield nothing.
func (p Payload) InboundMessages() []Message {
	if p.Object != ObjectBusinessAccount {
		return nil
	}
	var messages []Message
	for _, entry := range p.Entry {
		for _, change := range entry.Changes {
			if change.Field != FieldMessages {
				continue
			}
			messages = append(messages, change.Value.Messages...)
		}
	}
	return messages
}

package domain

// Role identifies the author of a conversation message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents one turn of a conversation, in the shape the
// model boundary expects (role + content, nothing else).
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// History is the ordered conversation replayed verbatim to the model
// on the next call. Order is semantically meaningful.
type History []Message

// NewMessage builds a Message, rejecting unknown roles.
func NewMessage(role Role, content string) (Message, error) {
	msg := Message{Role: role, Content: content}
	if err := msg.Validate(); err != nil {
		return Message{}, err
	}
	return msg, nil
}

// Validate reports whether the message is well formed. Content may be
// any text, including empty; only the role is constrained.
func (m Message) Validate() error {
	switch m.Role {
	case RoleSystem, RoleUser, RoleAssistant:
		return nil
	default:
		return ErrInvalidRole
	}
}

// InitialHistory returns the seed history for a fresh session: empty,
// or a single system message when systemMessage is non-empty. It never
// touches persisted storage.
func InitialHistory(systemMessage string) History {
	if systemMessage == "" {
		return History{}
	}
	return History{{Role: RoleSystem, Content: systemMessage}}
}

package models

// ChatRole identifies the author of a conversation turn.
type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
	RoleSystem    ChatRole = "system"
)

// ChatMessage is one turn in a conversation. The full history is supplied by
// the caller on every request; the server keeps no session state.
type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}

// ChatResult is the assistant's reply for one turn, with the structured order
// extraction when the customer placed one.
type ChatResult struct {
	Response     string        `json:"response"`
	OrderDetails *OrderDetails `json:"orderDetails,omitempty"`
}

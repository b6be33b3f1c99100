package domain

// Sender identifies which side of the support conversation wrote a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

// ChatMessage is one entry in the support widget's message list.
type ChatMessage struct {
	ID     int    `json:"id"`
	Sender Sender `json:"sender"`
	Text   string `json:"text"`
}

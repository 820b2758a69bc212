package completion

// Message is a single chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the outbound chat-completion payload. Always exactly two
// messages: a system instruction and the user prompt.
type ChatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

// ChatResponse carries the parts of the completion response this client
// reads. Everything else in the upstream payload is ignored.
type ChatResponse struct {
	Choices []Choice `json:"choices"`
}

// Choice is one generated completion.
type Choice struct {
	Message Message `json:"message"`
}

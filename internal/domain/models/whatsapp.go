package models

// WebhookPayload mirrors the body Meta posts to the WhatsApp webhook.
type WebhookPayload struct {
	Object string         `json:"object"`
	Entry  []WebhookEntry `json:"entry"`
}

// WebhookEntry groups the changes of one business account.
type WebhookEntry struct {
	ID      string          `json:"id"`
	Changes []WebhookChange `json:"changes"`
}

// WebhookChange carries one notification.
type WebhookChange struct {
	Field string       `json:"field"`
	Value WebhookValue `json:"value"`
}

// WebhookValue holds the inbound messages; delivery receipts are ignored.
type WebhookValue struct {
	MessagingProduct string           `json:"messaging_product"`
	Contacts         []Contact        `json:"contacts"`
	Messages         []InboundMessage `json:"messages"`
}

// Contact is the farmer who sent the message.
type Contact struct {
	WaID    string `json:"wa_id"`
	Profile struct {
		Name string `json:"name"`
	} `json:"profile"`
}

// InboundMessage keeps only the message shapes that can carry a command.
type InboundMessage struct {
	From        string              `json:"from"`
	ID          string              `json:"id"`
	Timestamp   string              `json:"timestamp"`
	Type        string              `json:"type"`
	Text        *TextContent        `json:"text,omitempty"`
	Interactive *InteractiveContent `json:"interactive,omitempty"`
}

// TextContent is a plain text body.
type TextContent struct {
	Body string `json:"body"`
}

// InteractiveContent is a button or list reply; the reply id holds the command text.
type InteractiveContent struct {
	Type        string      `json:"type"`
	ButtonReply *ReplyIDRef `json:"button_reply,omitempty"`
	ListReply   *ReplyIDRef `json:"list_reply,omitempty"`
}

// ReplyIDRef identifies the option a user picked.
type ReplyIDRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// OutboundMessageRequest is an operator push to a farmer's number.
type OutboundMessageRequest struct {
	To         string `json:"to" binding:"required"`
	Message    string `json:"message" binding:"required"`
	PreviewURL bool   `json:"preview_url"`
}

package client

import (
    "context"
    "net/http"
)

// ChatMessage is one turn of the assistant conversation. Role is "user"
// or "assistant".
type ChatMessage struct {
    Role    string `json:"role"`
    Content string `json:"content"`
}

// Ask sends a question to the showroom assistant. History carries the
// previous turns of the widget's conversation; catalogueCtx optionally
// carries listing data for the model to ground its answer in. The
// endpoint is public, so Ask works without a session.
func (c *Client) Ask(ctx context.Context, question string, history []ChatMessage, catalogueCtx string) (string, error) {
    body := struct {
        Message string        `json:"message"`
        History []ChatMessage `json:"history,omitempty"`
        Context string        `json:"context,omitempty"`
    }{Message: question, History: history, Context: catalogueCtx}

    var resp struct {
        Message string `json:"message"`
    }
    err := c.do(ctx, http.MethodPost, "/v1/assistant", body, &resp, false)
    return resp.Message, err
}

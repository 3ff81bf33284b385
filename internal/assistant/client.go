// Package assistant wraps the generative model behind the showroom chat
// widget. The model answers shopping questions about the catalogue; it
// never sees account data and the widget works for anonymous visitors.
package assistant

import (
    "context"
    "fmt"
    "strings"

    "github.com/google/generative-ai-go/genai"
    "google.golang.org/api/option"
)

// Client is a thin wrapper over a single configured generative model.
type Client struct {
    model *genai.GenerativeModel
}

// NewClient connects to the provider with the given key and model name.
func NewClient(ctx context.Context, apiKey, modelName string) (*Client, error) {
    client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
    if err != nil {
        return nil, err
    }
    model := client.GenerativeModel(modelName)
    model.SystemInstruction = &genai.Content{
        Parts: []genai.Part{genai.Text(systemPrompt)},
    }
    return &Client{model: model}, nil
}

// systemPrompt pins the assistant to the dealership domain. Off-topic
// requests are redirected back to car shopping.
const systemPrompt = `You are the virtual consultant of an online car dealership.
You help visitors choose a car: you answer questions about brands, models,
equipment, transmission and fuel types, the difference between new and used
cars, financing and the buying process on this marketplace.

Rules:
- Answer briefly and to the point, in the language the visitor writes in.
- When the visitor's question includes catalogue context, ground your answer
  in that context instead of inventing listings.
- You do not know live prices or stock counts unless they appear in the
  provided context; say so instead of guessing.
- If the question is not about cars or buying a car, politely steer the
  conversation back to car shopping.`

// Message is one turn of the chat widget's history.
type Message struct {
    Role    string `json:"role"` // "user" or "assistant"
    Content string `json:"content"`
}

// Reply sends the conversation to the model and returns its answer. The
// optional context string carries a snapshot of catalogue rows relevant
// to the visitor's question.
func (c *Client) Reply(ctx context.Context, history []Message, question, catalogueCtx string) (string, error) {
    chat := c.model.StartChat()
    for _, m := range history {
        role := "user"
        if m.Role == "assistant" {
            role = "model"
        }
        chat.History = append(chat.History, &genai.Content{
            Role:  role,
            Parts: []genai.Part{genai.Text(m.Content)},
        })
    }

    prompt := question
    if strings.TrimSpace(catalogueCtx) != "" {
        prompt = "Catalogue context:\n" + catalogueCtx + "\n\nVisitor question:\n" + question
    }

    resp, err := chat.SendMessage(ctx, genai.Text(prompt))
    if err != nil {
        return "", err
    }
    if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
        return "", fmt.Errorf("empty response from model")
    }

    var b strings.Builder
    for _, part := range resp.Candidates[0].Content.Parts {
        if t, ok := part.(genai.Text); ok {
            b.WriteString(string(t))
        }
    }
    if b.Len() == 0 {
        return "", fmt.Errorf("unexpected response type")
    }
    return b.String(), nil
}

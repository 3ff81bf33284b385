package handler

import (
    "context"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/Nihihitik/car-dealership/internal/assistant"
)

// AssistantHandler serves the public chat widget. A nil client (no API
// key configured) turns the endpoint into a 503 instead of a crash.
type AssistantHandler struct {
    AI *assistant.Client
}

func NewAssistantHandler(ai *assistant.Client) *AssistantHandler {
    return &AssistantHandler{AI: ai}
}

type assistantReq struct {
    Message string              `json:"message"`
    History []assistant.Message `json:"history"`
    Context string              `json:"context"` // optional catalogue snapshot
}

// Chat handles POST /v1/assistant.
func (h *AssistantHandler) Chat(c echo.Context) error {
    if h.AI == nil {
        return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "assistant is not configured"})
    }
    var req assistantReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if strings.TrimSpace(req.Message) == "" {
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{"detail": []fieldError{
            {Field: "message", Msg: "message is required"},
        }})
    }
    if len(req.History) > 20 {
        req.History = req.History[len(req.History)-20:]
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
    defer cancel()

    answer, err := h.AI.Reply(ctx, req.History, req.Message, req.Context)
    if err != nil {
        return c.JSON(http.StatusBadGateway, echo.Map{"error": "assistant unavailable"})
    }
    return c.JSON(http.StatusOK, echo.Map{"message": answer})
}

package handler

import (
    "context"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/Nihihitik/car-dealership/internal/model"
    "github.com/Nihihitik/car-dealership/internal/repository"
)

type askQuestionReq struct {
    Question string `json:"question"`
}

// AskQuestion handles POST /v1/cars/:id/questions.
func (h *BuyerHandler) AskQuestion(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    carID, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var req askQuestionReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if strings.TrimSpace(req.Question) == "" {
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{"detail": []fieldError{
            {Field: "question", Msg: "question is required"},
        }})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if _, err := h.Cars.GetByID(ctx, carID); err != nil {
        if err == repository.ErrNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "car not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }

    q := model.Question{CarID: carID, BuyerID: uid, Question: req.Question}
    if err := h.Questions.Create(ctx, &q); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create question failed"})
    }
    return c.JSON(http.StatusCreated, questionResp{
        ID: q.ID, CarID: q.CarID, Question: q.Question, Answer: nil, CreatedAt: q.CreatedAt,
    })
}

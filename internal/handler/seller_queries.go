package handler

import (
    "context"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/Nihihitik/car-dealership/internal/repository"
)

// BuyersForCar handles GET /v1/queries/buyers-for-car?car_id=N: buyers
// whose saved preferences accept one of the seller's listings. Contact
// details are exposed, so the listing must belong to the caller.
func (h *SellerHandler) BuyersForCar(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    carID := queryInt(c, "car_id")
    if carID <= 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "car_id required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    car, err := h.Cars.GetByID(ctx, uint64(carID))
    if err != nil {
        if err == repository.ErrNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "car not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    if car.SellerID != uid {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "not your listing"})
    }

    buyers, err := h.Users.FindBuyersForCar(ctx, repository.BuyerMatchQuery{
        Brand:        car.Brand,
        Model:        car.Model,
        Year:         car.Year,
        Transmission: car.Transmission,
        Condition:    car.Condition,
        Price:        car.Price,
    })
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    return c.JSON(http.StatusOK, buyers)
}

// BuyersByModel handles GET /v1/queries/buyers-by-model?model=X: buyers
// whose saved preference names the given model.
func (h *SellerHandler) BuyersByModel(c echo.Context) error {
    carModel := strings.TrimSpace(c.QueryParam("model"))
    if carModel == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "model required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    buyers, err := h.Users.FindBuyersByModel(ctx, carModel)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    return c.JSON(http.StatusOK, buyers)
}

type answerReq struct {
    Answer string `json:"answer"`
}

// AnswerQuestion handles PATCH /v1/questions/:id/answer. Only the seller
// owning the listing the question targets may answer.
func (h *SellerHandler) AnswerQuestion(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var req answerReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if strings.TrimSpace(req.Answer) == "" {
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{"detail": []fieldError{
            {Field: "answer", Msg: "answer is required"},
        }})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Questions.Answer(ctx, id, uid, req.Answer); err != nil {
        switch err {
        case repository.ErrNotFound:
            return c.JSON(http.StatusNotFound, echo.Map{"error": "question not found"})
        case repository.ErrForbidden:
            return c.JSON(http.StatusForbidden, echo.Map{"error": "not your listing"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"id": id, "answer": req.Answer})
}

package client

import (
    "context"
    "net/http"
    "strconv"
)

// FavoriteCar is a saved listing plus when it was saved.
type FavoriteCar struct {
    Car
    AddedAt string `json:"added_at"`
}

// MyFavorites returns the buyer's saved listings, most recent first.
func (c *Client) MyFavorites(ctx context.Context) ([]FavoriteCar, error) {
    var out []FavoriteCar
    err := c.do(ctx, http.MethodGet, "/v1/favorites", nil, &out, true)
    return out, err
}

// ToggleFavorite flips the car's membership in the buyer's favorites and
// returns the confirmed state. currentlyFavorite is the state the caller
// is rendering; the inverse operation is sent and the server's verdict
// wins. A 409 on add means the car was already saved, a 404 on remove
// means it already wasn't; both resolve to the true state instead of an
// error, so a stale UI heals on the next toggle.
//
// While one toggle for a car is in flight, further toggles for the same
// car return ErrPending without a network call.
func (c *Client) ToggleFavorite(ctx context.Context, carID uint64, currentlyFavorite bool) (favorite bool, err error) {
    if !c.pending.acquire("favorite", carID) {
        return currentlyFavorite, ErrPending
    }
    defer c.pending.release("favorite", carID)

    path := "/v1/favorites/" + strconv.FormatUint(carID, 10)
    if currentlyFavorite {
        err = c.do(ctx, http.MethodDelete, path, nil, nil, true)
        if apiErr, ok := err.(*APIError); ok && apiErr.StatusCode == http.StatusNotFound {
            return false, nil
        }
        if err != nil {
            return true, err
        }
        return false, nil
    }

    err = c.do(ctx, http.MethodPost, path, nil, nil, true)
    if apiErr, ok := err.(*APIError); ok && apiErr.StatusCode == http.StatusConflict {
        return true, nil
    }
    if err != nil {
        return false, err
    }
    return true, nil
}

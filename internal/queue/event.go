// Package queue defines message payloads exchanged over the message broker
// and the background consumers that audit them.
package queue

// Queue names.  Routing goes through the default exchange, so the routing
// key equals the queue name.
const (
	FavoritesChangedQueue = "favorites.changed"
	UserRegisteredQueue   = "user.registered"
)

// Favorite actions carried by FavoritesChangedEvent.
const (
	ActionAdded   = "added"
	ActionRemoved = "removed"
)

// FavoritesChangedEvent is published after a user adds or removes a
// favorite restaurant.  Only effective changes are published; an idempotent
// re-add is not an event.
type FavoritesChangedEvent struct {
	UserID       string `json:"user_id"`
	RestaurantID string `json:"restaurant_id"`
	Action       string `json:"action"`
	OccurredAt   string `json:"occurred_at"`
}

// UserRegisteredEvent is published after an account is created.  It never
// carries credentials.
type UserRegisteredEvent struct {
	UserID     string `json:"user_id"`
	Email      string `json:"email"`
	FirstName  string `json:"first_name"`
	OccurredAt string `json:"occurred_at"`
}

package domain

import "time"

// Registration joins a user to an event. The (user_id, event_id) pair is the
// table's composite primary key, which makes the store the authoritative
// duplicate guard.
type Registration struct {
	UserID    string    `json:"user_id" dynamodbav:"user_id"`
	EventID   string    `json:"event_id" dynamodbav:"event_id"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
}

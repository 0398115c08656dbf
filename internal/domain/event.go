package domain

import "time"

// DefaultEventCapacity applies when a seeded event does not set one.
const DefaultEventCapacity = 50

// Event is a schedulable activity. Events are immutable after seeding;
// no mutation API is exposed. StartAt and EndAt are stored as epoch seconds
// so range filters compare numbers instead of variable-precision strings.
type Event struct {
	EventID     string    `json:"id" dynamodbav:"event_id"`
	Title       string    `json:"title" dynamodbav:"title"`
	Description string    `json:"description" dynamodbav:"description"`
	Location    string    `json:"location" dynamodbav:"location"`
	Images      []string  `json:"images" dynamodbav:"images"`
	StartAt     time.Time `json:"startAt" dynamodbav:"start_at,unixtime"`
	EndAt       time.Time `json:"endAt" dynamodbav:"end_at,unixtime"`
	Capacity    int       `json:"capacity" dynamodbav:"capacity"`
	CreatedAt   time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt   time.Time `json:"updated" dynamodbav:"updated_at"`
}

// EventWithCount annotates an event with its live registration count. The
// count is computed at query time, not stored, so it reflects store state at
// the moment of the read.
type EventWithCount struct {
	Event
	RegistrationsCount int `json:"registrationsCount"`
}

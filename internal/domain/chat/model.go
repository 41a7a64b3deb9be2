package chat

import "time"

// HouseholdMessage es un mensaje del chat familiar.
type HouseholdMessage struct {
	ID          string
	HouseholdID string

	AuthorUID  string
	AuthorName string

	Text string

	CreatedAt time.Time
}

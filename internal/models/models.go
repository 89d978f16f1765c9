package models

import "time"

// Event represents a calendar event managed from the admin dashboard
type Event struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Date        string    `json:"date"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	CreatedAt   time.Time `json:"created_at"`
}

// Image represents a stored media object
type Image struct {
	ID    string `json:"id"`
	URL   string `json:"url"`
	S3Key string `json:"s3_key"`
}

// EventImage links one image to one event
type EventImage struct {
	ID      string `json:"id"`
	EventID string `json:"event_id"`
	ImageID string `json:"image_id"`
}

// User represents an account that can sign in to the dashboard
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Approved     bool      `json:"approved"`
	CreatedAt    time.Time `json:"created_at"`
}

// BoardProfile represents a board member shown on the public site
type BoardProfile struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Title    string `json:"title"`
	Bio      string `json:"bio"`
	PhotoURL string `json:"photo_url"`
	Position int    `json:"position"`
}

package notification

import "time"

const (
	PlatformWeb     = "web"
	PlatformAndroid = "android"
	PlatformIOS     = "ios"
)

type Notification struct {
	ID        string    `json:"id" validate:"required"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Read      bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

type Device struct {
	Token    string `json:"token"`
	Platform string `json:"platform"`
}

// Unread counts notifications not yet marked read.
func Unread(list []Notification) int {
	n := 0
	for _, item := range list {
		if !item.Read {
			n++
		}
	}
	return n
}

package broadcast

import "errors"

// Errors
var (
	ErrSubscriberClosed = errors.New("subscriber closed")
	ErrSubscriberPanic  = errors.New("subscriber panicked")
)

// Subscriber is one output channel of the hub.
type Subscriber interface {
	// ID uniquely identifies the subscriber within a hub.
	ID() string

	// Send delivers one text message.
	Send(data []byte) error

	// Close terminates the subscriber's connection.
	Close() error
}

// Greeting is sent to every subscriber on join.
type Greeting struct {
	Info string `json:"info"`
	TS   int64  `json:"ts"` // Unix milliseconds
}

// Stats holds hub counters.
type Stats struct {
	Subscribers int   `json:"subscribers"`
	Joined      int64 `json:"joined"`
	Published   int64 `json:"published"`
	Delivered   int64 `json:"delivered"`
	Failed      int64 `json:"failed"`
}

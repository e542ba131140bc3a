package model

// Event is anything publishable through the generic kafka producer.
type Event interface {
	GetId() string
}

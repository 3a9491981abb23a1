package models

import "time"

// StatusReport is the backend's /status payload.
type StatusReport struct {
	Status string
	Time   time.Time
}

// TriggerAck acknowledges a manual /trigger-day request.
type TriggerAck struct {
	Message string
}

// FetchRecord is one journaled backend call.
type FetchRecord struct {
	ID         int64
	SessionID  string
	Seq        uint64
	Endpoint   string
	Query      string
	StartedAt  time.Time
	Duration   time.Duration
	HTTPStatus int
	Success    bool
	Error      string
}

package session

import "canopy/backend/internal/apperror"

// Source records where a session was constructed: a real HTTP request, an
// internal command/query, or asynchronous event processing.
type Source string

const (
	SourceHTTPRequest    Source = "httpRequest"
	SourceCommandOrQuery Source = "commandOrQuery"
	SourceEvent          Source = "event"
)

// ParseSource validates raw against the fixed set of session sources.
func ParseSource(raw string) (Source, error) {
	switch Source(raw) {
	case SourceHTTPRequest, SourceCommandOrQuery, SourceEvent:
		return Source(raw), nil
	}
	return "", apperror.Operational(
		"canopy.1.error.authentication.invalid_session_source",
		"invalid-session-source",
		400,
		raw+" - invalid session source",
	)
}

func (s Source) IsHTTPRequest() bool    { return s == SourceHTTPRequest }
func (s Source) IsCommandOrQuery() bool { return s == SourceCommandOrQuery }
func (s Source) IsEvent() bool          { return s == SourceEvent }

func (s Source) String() string { return string(s) }

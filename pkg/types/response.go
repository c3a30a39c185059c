package types

// ErrorEnvelope is the body of every non-2xx response.
type ErrorEnvelope struct {
	Error string `json:"error"`
}

// MessageEnvelope is returned by operations that only acknowledge.
type MessageEnvelope struct {
	Message string `json:"message"`
}

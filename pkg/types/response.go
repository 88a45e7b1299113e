package types

// Envelope wraps every successful API payload under "data". Tests decode into a
// concrete T; handlers write Envelope[any].
type Envelope[T any] struct {
	Data T `json:"data"`
}

type SuccessEnvelope = Envelope[any]

// APIError is the client-visible error body. RequestID echoes X-Request-Id so a
// storefront toast can quote it.
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Details   any    `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

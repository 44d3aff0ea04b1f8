package serverutils

// ErrorEnvelope is the uniform error body for every endpoint. Success
// responses carry their page schema directly, without an envelope, to
// match the contract the web clients already consume.
type ErrorEnvelope struct {
	Success   bool   `json:"success"`
	Code      int    `json:"code"`
	Message   string `json:"message"`
	ErrorType string `json:"error_type"`
}

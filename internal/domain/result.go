package domain

// Result is the response envelope every service operation resolves to.
// Soft failures (no rows, duplicates, bad enum values) are expressed as a
// Result with a non-2xx StatusCode rather than as a Go error; callers are
// expected to inspect the body even on transport success.
// swagger:model Result
type Result struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       any    `json:"data,omitempty"`
	Count      *int   `json:"count,omitempty"`
}

// OK returns a 200 Result with the given message and data.
func OK(message string, data any) *Result {
	return &Result{StatusCode: 200, Message: message, Data: data}
}

// OKCount returns a 200 Result carrying data and a count.
func OKCount(message string, data any, count int) *Result {
	return &Result{StatusCode: 200, Message: message, Data: data, Count: &count}
}

// Soft returns a Result for a soft failure with the given status code.
func Soft(statusCode int, message string) *Result {
	return &Result{StatusCode: statusCode, Message: message}
}

// SoftCount returns a soft-failure Result that still reports a count.
func SoftCount(statusCode int, message string, count int) *Result {
	return &Result{StatusCode: statusCode, Message: message, Count: &count}
}

package httpapi

// Result is the JSON envelope every endpoint answers with.
// - code: 2000 on success
// - type: 'success' | 'error' | 'warning'
// - message: string
// - result: payload
type Result[T any] struct {
	Code    int    `json:"code"`
	Type    string `json:"type"`
	Message string `json:"message"`
	Result  T      `json:"result"`
}

const (
	ResultSuccess = 2000
	ResultError   = -1
	// ResultUnauthorized pairs with HTTP 401 for a missing or stale session.
	ResultUnauthorized = 60401
)

func Ok[T any](result T) Result[T] {
	return Result[T]{Code: ResultSuccess, Type: "success", Message: "ok", Result: result}
}

func Fail(message string) Result[any] {
	return Result[any]{Code: ResultError, Type: "error", Message: message, Result: nil}
}

// Warn carries a payload together with a non-blocking notice (duplicate card
// numbers during import).
func Warn[T any](message string, result T) Result[T] {
	return Result[T]{Code: ResultSuccess, Type: "warning", Message: message, Result: result}
}

func Unauthorized(message string) Result[any] {
	return Result[any]{Code: ResultUnauthorized, Type: "error", Message: message, Result: nil}
}

package api

import "github.com/signadot/space/ir"

const (
	ErrCodeInvalidKey  = "invalid_key"
	ErrCodeInvalidPath = "invalid_path"
	ErrCodeInvalidDiff = "invalid_diff"
	ErrCodeBadRequest  = "bad_request"
	ErrCodeBadFilter   = "bad_filter"
	ErrCodeBadFormat   = "bad_format"
	ErrCodeNotFound    = "not_found"
	ErrCodeNoMatch     = "match_failed"
	ErrCodeStorage     = "storage_error"
)

// Error is the body of every failed response.
type Error struct {
	Code    string
	Message string
}

func NewError(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

// Node renders e as
//
//	error
//	 code <code>
//	 message <message>
func (e *Error) Node() *ir.Node {
	return ir.FromKeyVals("error", ir.FromKeyVals("code", e.Code, "message", e.Message))
}

// ErrorFromNode reads an error response body. It returns nil when doc is not
// one.
func ErrorFromNode(doc *ir.Node) *Error {
	ev := doc.Lookup("error")
	if !ev.IsTree() {
		return nil
	}
	code, _ := ev.GetString("code")
	msg, _ := ev.GetString("message")
	return NewError(code, msg)
}

package parser

import (
	"fmt"

	"github.com/coralsh/coral/runtime/lexer"
)

// ErrorType represents different categories of dispatch errors.
type ErrorType int

const (
	ErrorMissingCommand ErrorType = iota
	ErrorDanglingRedirect
	ErrorPipeUnsupported
)

func (e ErrorType) String() string {
	switch e {
	case ErrorMissingCommand:
		return "missing command"
	case ErrorDanglingRedirect:
		return "dangling redirect"
	case ErrorPipeUnsupported:
		return "pipe unsupported"
	default:
		return "unknown error"
	}
}

// ParseError is a syntax error found while classifying a token
// sequence. Token is the token that triggered the error; for
// ErrorMissingCommand it is the zero Token.
type ParseError struct {
	Type    ErrorType
	Message string
	Token   lexer.Token
}

func (e *ParseError) Error() string {
	return e.Message
}

func missingCommandError() *ParseError {
	return &ParseError{
		Type:    ErrorMissingCommand,
		Message: "syntax error: missing command name",
	}
}

func danglingRedirectError(tok lexer.Token) *ParseError {
	return &ParseError{
		Type:    ErrorDanglingRedirect,
		Message: fmt.Sprintf("syntax error: %q has no target", tok.Text),
		Token:   tok,
	}
}

func pipeUnsupportedError(tok lexer.Token) *ParseError {
	return &ParseError{
		Type:    ErrorPipeUnsupported,
		Message: "pipelines are not supported",
		Token:   tok,
	}
}

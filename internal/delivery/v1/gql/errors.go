package gql

import "github.com/DRSN-tech/catalog/pkg/e"

const (
	CodeBadUserInput = "BAD_USER_INPUT"
	CodeInternal     = "INTERNAL"
)

// codedError — ошибка GraphQL с кодом в extensions.code.
type codedError struct {
	message string
	code    string
}

func (c *codedError) Error() string {
	return c.message
}

// Extensions реализует gqlerrors.ExtendedError.
func (c *codedError) Extensions() map[string]any {
	return map[string]any{"code": c.code}
}

func newBadUserInputError(err error) error {
	return &codedError{message: err.Error(), code: CodeBadUserInput}
}

// newInternalError скрывает детали сбоя: наружу уходит только статичное сообщение.
func newInternalError() error {
	return &codedError{message: e.ErrInternalServerError.Error(), code: CodeInternal}
}

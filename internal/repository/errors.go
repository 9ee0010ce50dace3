package repository

import "errors"

// Common repository errors
var (
	ErrBoardNotFound     = errors.New("board not found")
	ErrListNotFound      = errors.New("list not found")
	ErrCardNotFound      = errors.New("card not found")
	ErrConnectorNotFound = errors.New("connector not found")
	ErrUserNotFound      = errors.New("user not found")
)

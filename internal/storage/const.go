package storage

import (
	"errors"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmptyUserID  = errors.New("user id must not be empty")
)

const defaultListLimit = 100

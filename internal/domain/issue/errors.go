package issue

import "errors"

var (
	ErrAlreadyClosed = errors.New("issue is already closed")
	ErrAlreadyOpen   = errors.New("issue is already open")
	ErrEmptyTitle    = errors.New("title is required")
	ErrTitleTooLong  = errors.New("title exceeds maximum length of 255 characters")
	ErrEmptyComment  = errors.New("comment cannot be empty")
	ErrNotAComment   = errors.New("only comments can be edited")
)

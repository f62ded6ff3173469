package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrCorruptCategoryTree is returned when a category is reached twice during a walk.
	ErrCorruptCategoryTree = errors.New("corrupt category tree")
	// ErrInvalidSetting indicates a theme setting value that cannot be interpreted.
	ErrInvalidSetting = errors.New("invalid setting")
)

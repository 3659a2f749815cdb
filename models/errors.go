package models

import "errors"

var (
	ErrNotFound            = errors.New("record not found")
	ErrUserAlreadyExists   = errors.New("user already exists")
	ErrUserNotClient       = errors.New("user is not a client")
	ErrWrongPassword       = errors.New("wrong password")
	ErrWrongListSize       = errors.New("wrong list size")
	ErrNoteCannotBeDeleted = errors.New("note cannot be deleted")
)

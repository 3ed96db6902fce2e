package models

import "errors"

var (
	// ErrValidation indicates malformed or missing input; never retried.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound indicates a missing party, catalog entry or order.
	ErrNotFound = errors.New("not found")
	// ErrConflict indicates a duplicate quotation or order id on create.
	ErrConflict = errors.New("already exists")
	// ErrInvalidTransition indicates an illegal status change or a
	// transition missing its required side payload.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrPersistence indicates a storage or transaction failure; safe to retry.
	ErrPersistence = errors.New("persistence failure")
	// ErrRender indicates a document generation failure; aborts the
	// mutating transaction.
	ErrRender = errors.New("document generation failed")
	// ErrNotify indicates a notification failure; logged, never fatal.
	ErrNotify = errors.New("notification failed")
	// ErrUnauthorized indicates a failed admin login.
	ErrUnauthorized = errors.New("unauthorized")
)

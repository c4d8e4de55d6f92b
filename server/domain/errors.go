package domain

import "errors"

var (
	ErrUnknownConnection  = errors.New("unknown connection")
	ErrInvalidOrDuplicate = errors.New("room already exists or invalid name")
	ErrNotFound           = errors.New("not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrInvalidName        = errors.New("invalid name")
	ErrInvalidAttachment  = errors.New("invalid attachment")
	ErrSessionRegistered  = errors.New("session already registered")
)

package repository

import "errors"

var (
	ErrNotFound = errors.New("not found")
	// ErrConflict - документ изменился между чтением и записью (ревизия не совпала)
	ErrConflict = errors.New("revision conflict")
)

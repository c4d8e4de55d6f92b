package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	DefaultRoom          = "general"
	PrivateBucket        = "private"
	MaxRoomNameLength    = 100
	MaxDisplayNameLength = 50
)

// ValidateRoomName rejects empty, whitespace-only, overlong and non UTF-8 names.
func ValidateRoomName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("room name is empty: %w", ErrInvalidName)
	}
	if !utf8.ValidString(name) {
		return fmt.Errorf("room name is not valid utf-8: %w", ErrInvalidName)
	}
	if utf8.RuneCountInString(name) > MaxRoomNameLength {
		return fmt.Errorf("room name exceeds %d characters: %w", MaxRoomNameLength, ErrInvalidName)
	}
	return nil
}

func ValidateDisplayName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("display name is empty: %w", ErrInvalidName)
	}
	if !utf8.ValidString(name) {
		return fmt.Errorf("display name is not valid utf-8: %w", ErrInvalidName)
	}
	if utf8.RuneCountInString(name) > MaxDisplayNameLength {
		return fmt.Errorf("display name exceeds %d characters: %w", MaxDisplayNameLength, ErrInvalidName)
	}
	return nil
}

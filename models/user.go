// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"time"
)

// Role is the closed set of application roles a profile can hold.
type Role string

const (
	// RoleUser consumes the feed, the learning hub and the chat assistant.
	RoleUser Role = "user"
	// RoleAdmin manages security updates.
	RoleAdmin Role = "admin"
)

// ParseRole converts the raw value stored in the users table into a [Role].
// Anything other than "user" or "admin" is rejected.
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleUser, RoleAdmin:
		return Role(raw), nil
	default:
		return "", fmt.Errorf("unknown role %q", raw)
	}
}

// UserProfile is the application-level user record kept in the users table.
// ID always equals the subject id of the session that owns it.
type UserProfile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// IsAdmin reports whether the profile may manage security updates.
func (p UserProfile) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// TableName returns the name of the remote table holding profiles.
func (p UserProfile) TableName() string {
	return "users"
}

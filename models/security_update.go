// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"time"
)

// Severity is the closed set of severity levels of a security update.
type Severity string

const (
	SeverityLow      Severity = "Low"
	SeverityMedium   Severity = "Medium"
	SeverityHigh     Severity = "High"
	SeverityCritical Severity = "Critical"
)

// Severities returns all severities from the least to the most severe.
func Severities() []Severity {
	return []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}
}

// ParseSeverity converts raw into a [Severity].
func ParseSeverity(raw string) (Severity, error) {
	switch Severity(raw) {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return Severity(raw), nil
	default:
		return "", fmt.Errorf("unknown severity %q", raw)
	}
}

// SecurityUpdate is a published security-awareness record.
//
// Only admins create, edit or delete updates; everybody can read them.
// Listings are always ordered by CreatedAt, newest first.
type SecurityUpdate struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Type      Category  `json:"type"`
	Severity  Severity  `json:"severity"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// Fields returns the editable part of the update.
func (u SecurityUpdate) Fields() UpdateFields {
	return UpdateFields{
		Title:    u.Title,
		Summary:  u.Summary,
		Type:     u.Type,
		Severity: u.Severity,
	}
}

// UpdateFields is the admin-editable subset of a [SecurityUpdate].
type UpdateFields struct {
	Title    string   `json:"title"`
	Summary  string   `json:"summary"`
	Type     Category `json:"type"`
	Severity Severity `json:"severity"`
}

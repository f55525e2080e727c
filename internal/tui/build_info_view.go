// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/MKhiriev/cyber-aware/models"
)

func renderBuildInfoWindow(info models.AppBuildInfo) string {
	var b strings.Builder

	b.WriteString("Application: " + appName + "\n")
	b.WriteString("Version:     " + info.BuildVersion() + "\n")
	b.WriteString("Date:        " + info.BuildDate() + "\n")
	b.WriteString("Commit:      " + info.BuildCommit())
	if info.IsDevelopment() {
		b.WriteString("\n\n" + mutedStyle.Render("development build"))
	}

	return renderPage("ABOUT THIS BUILD", b.String(), "esc: back")
}

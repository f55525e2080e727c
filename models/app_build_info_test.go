package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAppBuildInfo(t *testing.T) {
	tests := []struct {
		name        string
		version     string
		date        string
		commit      string
		wantVersion string
		wantDev     bool
	}{
		{name: "release", version: "v1.4.0", date: "2026-10-01", commit: "9f1c2e7", wantVersion: "v1.4.0"},
		{name: "plain go build", wantVersion: NotAvailable, wantDev: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := NewAppBuildInfo(tt.version, tt.date, tt.commit)

			assert.Equal(t, tt.wantVersion, info.BuildVersion())
			assert.Equal(t, tt.wantDev, info.IsDevelopment())
			assert.NotEmpty(t, info.BuildDate())
			assert.NotEmpty(t, info.BuildCommit())
		})
	}
}

func TestAppBuildInfo_String(t *testing.T) {
	info := NewAppBuildInfo("v1.4.0", "", "9f1c2e7")
	assert.Equal(t, "version v1.4.0, built N/A from 9f1c2e7", info.String())
}

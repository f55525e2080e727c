package models

import "fmt"

// NotAvailable is shown for build metadata that was not injected at link
// time.
const NotAvailable = "N/A"

// AppBuildInfo is the version, date and commit the binary was built from.
// The values come from -ldflags "-X main.buildVersion=..." and are shown on
// the about-this-build overlay and at the start of the provisioning log.
type AppBuildInfo struct {
	buildVersion string
	buildDate    string
	buildCommit  string
}

// NewAppBuildInfo returns build metadata with empty values replaced by
// [NotAvailable].
func NewAppBuildInfo(buildVersion, buildDate, buildCommit string) AppBuildInfo {
	return AppBuildInfo{
		buildVersion: orNotAvailable(buildVersion),
		buildDate:    orNotAvailable(buildDate),
		buildCommit:  orNotAvailable(buildCommit),
	}
}

func (a AppBuildInfo) BuildVersion() string {
	return a.buildVersion
}

func (a AppBuildInfo) BuildDate() string {
	return a.buildDate
}

func (a AppBuildInfo) BuildCommit() string {
	return a.buildCommit
}

// IsDevelopment reports whether the binary was built without a version,
// e.g. with a plain "go build".
func (a AppBuildInfo) IsDevelopment() bool {
	return a.buildVersion == "" || a.buildVersion == NotAvailable
}

func (a AppBuildInfo) String() string {
	return fmt.Sprintf("version %s, built %s from %s", a.buildVersion, a.buildDate, a.buildCommit)
}

func orNotAvailable(s string) string {
	if s == "" {
		return NotAvailable
	}
	return s
}

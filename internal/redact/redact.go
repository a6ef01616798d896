// Package redact strips direct PII from result payloads for callers without
// elevated privilege. It runs strictly after scoring and evidence assembly,
// so redaction never influences ranking.
package redact

import (
	"regexp"
	"strings"

	"github.com/akash62835/ResumeRAG/internal/domain"
)

// Redaction markers.
const (
	Marker        = "[REDACTED]"
	AddressMarker = "[ADDRESS REDACTED]"
)

// Role is the caller privilege signal supplied by the auth boundary.
type Role string

// Known caller roles.
const (
	RoleViewer    Role = "viewer"
	RoleRecruiter Role = "recruiter"
	RoleAdmin     Role = "admin"
)

// Elevated reports whether the role grants full field access.
func (r Role) Elevated() bool {
	return r == RoleRecruiter || r == RoleAdmin
}

var addressPattern = regexp.MustCompile(`\d+\s+[A-Za-z\s]+`)

// Apply redacts direct PII fields for non-elevated callers. It is a pure,
// idempotent transform over a copy of the input: email and phone become the
// fixed marker when present, address-shaped substrings inside location become
// the address marker while non-address text ("City, ST") is left alone.
// Absent fields stay absent, and skills, experience, education, and scores
// are never touched.
func Apply(parsed domain.ParsedData, role Role) domain.ParsedData {
	if role.Elevated() {
		return parsed
	}
	if parsed.Email != "" {
		parsed.Email = Marker
	}
	if parsed.Phone != "" {
		parsed.Phone = Marker
	}
	if parsed.Location != "" && !strings.Contains(parsed.Location, AddressMarker) {
		parsed.Location = addressPattern.ReplaceAllString(parsed.Location, AddressMarker)
	}
	return parsed
}

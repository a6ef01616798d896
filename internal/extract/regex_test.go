package extract

import (
	"context"
	"reflect"
	"testing"
)

const sampleResume = `Jane Smith
jane.smith@example.com | (555) 123-4567
Austin, TX

Summary: Backend engineer with a focus on distributed systems.

Skills: Go, Kubernetes, PostgreSQL, Kafka

Experience:
Acme Corp - Senior Engineer. Built the ingestion pipeline and owned the search service for three years.

Initech - Engineer. Maintained billing systems and migrated them to the cloud.

Education:
State University, BSc Computer Science

Certifications: CKA, AWS Solutions Architect

Languages: English, Spanish`

func TestRegex_Extract(t *testing.T) {
	x := NewRegex()
	parsed, err := x.Extract(context.Background(), sampleResume)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if parsed.Name != "Jane Smith" {
		t.Errorf("name = %q", parsed.Name)
	}
	if parsed.Email != "jane.smith@example.com" {
		t.Errorf("email = %q", parsed.Email)
	}
	if parsed.Phone == "" {
		t.Error("phone not extracted")
	}
	if parsed.Location != "Austin, TX" {
		t.Errorf("location = %q", parsed.Location)
	}
	if parsed.Summary == "" {
		t.Error("summary not extracted")
	}
	if !reflect.DeepEqual(parsed.Skills, []string{"Go", "Kubernetes", "PostgreSQL", "Kafka"}) {
		t.Errorf("skills = %v", parsed.Skills)
	}
	if len(parsed.Experience) != 2 {
		t.Errorf("experience entries = %d, want 2", len(parsed.Experience))
	}
	if len(parsed.Certifications) != 2 {
		t.Errorf("certifications = %v", parsed.Certifications)
	}
	if !reflect.DeepEqual(parsed.Languages, []string{"English", "Spanish"}) {
		t.Errorf("languages = %v", parsed.Languages)
	}
}

func TestRegex_EmptyText(t *testing.T) {
	x := NewRegex()
	parsed, err := x.Extract(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed.Name != "" || parsed.Email != "" || len(parsed.Skills) != 0 {
		t.Errorf("expected empty fields, got %+v", parsed)
	}
}

func TestRegex_NameRequiresCapitalizedShortLine(t *testing.T) {
	x := NewRegex()
	parsed, _ := x.Extract(context.Background(), "RESUME DOCUMENT 2024\nJane Smith")
	if parsed.Name != "" {
		t.Errorf("name = %q, want empty for non-name first line", parsed.Name)
	}
}

func TestDetectPII(t *testing.T) {
	x := NewRegex()
	parsed, _ := x.Extract(context.Background(), sampleResume)

	flags := DetectPII(sampleResume, parsed)
	if !flags.HasEmail || !flags.HasPhone || !flags.HasAddress {
		t.Errorf("flags = %+v", flags)
	}
	if flags.HasSocialSecurity {
		t.Error("no SSN in sample text")
	}

	flags = DetectPII("ssn 123-45-6789", parsed)
	if !flags.HasSocialSecurity {
		t.Error("SSN pattern not detected")
	}
}

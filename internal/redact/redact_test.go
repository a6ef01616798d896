package redact

import (
	"reflect"
	"testing"

	"github.com/akash62835/ResumeRAG/internal/domain"
)

func sampleParsed() domain.ParsedData {
	return domain.ParsedData{
		Name:     "Jane Smith",
		Email:    "a@b.com",
		Phone:    "555-123-4567",
		Location: "123 Main Street, Austin, TX",
		Skills:   []string{"Go", "Kubernetes"},
		Experience: []domain.ExperienceEntry{
			{Company: "Acme", Position: "Engineer"},
		},
	}
}

func TestApply_RestrictedCaller(t *testing.T) {
	got := Apply(sampleParsed(), RoleViewer)

	if got.Email != Marker {
		t.Errorf("email = %q, want %q", got.Email, Marker)
	}
	if got.Phone != Marker {
		t.Errorf("phone = %q, want %q", got.Phone, Marker)
	}
	// The street pattern stops at the first comma, so the city and state
	// after "123 Main Street" survive.
	if got.Location != AddressMarker+", Austin, TX" {
		t.Errorf("location = %q", got.Location)
	}
}

func TestApply_ElevatedCallerUntouched(t *testing.T) {
	for _, role := range []Role{RoleRecruiter, RoleAdmin} {
		got := Apply(sampleParsed(), role)
		if !reflect.DeepEqual(got, sampleParsed()) {
			t.Errorf("role %s: fields were modified: %+v", role, got)
		}
	}
}

func TestApply_Idempotent(t *testing.T) {
	once := Apply(sampleParsed(), RoleViewer)
	twice := Apply(once, RoleViewer)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("not idempotent: %+v vs %+v", once, twice)
	}
}

func TestApply_AbsentFieldsStayAbsent(t *testing.T) {
	got := Apply(domain.ParsedData{Name: "Jane Smith"}, RoleViewer)
	if got.Email != "" || got.Phone != "" || got.Location != "" {
		t.Errorf("redaction introduced fields: %+v", got)
	}
}

func TestApply_CityStateLocationKept(t *testing.T) {
	parsed := domain.ParsedData{Location: "Austin, TX"}
	got := Apply(parsed, RoleViewer)
	if got.Location != "Austin, TX" {
		t.Errorf("location = %q, non-address text must survive", got.Location)
	}
}

func TestApply_NonPIIFieldsNeverRedacted(t *testing.T) {
	got := Apply(sampleParsed(), RoleViewer)
	if !reflect.DeepEqual(got.Skills, []string{"Go", "Kubernetes"}) {
		t.Errorf("skills changed: %v", got.Skills)
	}
	if len(got.Experience) != 1 || got.Experience[0].Company != "Acme" {
		t.Errorf("experience changed: %v", got.Experience)
	}
	if got.Name != "Jane Smith" {
		t.Errorf("name changed: %q", got.Name)
	}
}

func TestRole_Elevated(t *testing.T) {
	if RoleViewer.Elevated() {
		t.Error("viewer must not be elevated")
	}
	if !RoleRecruiter.Elevated() || !RoleAdmin.Elevated() {
		t.Error("recruiter and admin must be elevated")
	}
	if Role("unknown").Elevated() {
		t.Error("unknown role must not be elevated")
	}
}

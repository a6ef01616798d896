package openai

import "testing"

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain json", `{"name":"A"}`, `{"name":"A"}`},
		{"fenced json", "```json\n{\"name\":\"A\"}\n```", `{"name":"A"}`},
		{"bare fence", "```\n{\"name\":\"A\"}\n```", `{"name":"A"}`},
		{"surrounding whitespace", "  \n{\"name\":\"A\"}\n  ", `{"name":"A"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripCodeFences(tt.in); got != tt.want {
				t.Errorf("stripCodeFences(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

package detect

import (
	"testing"
)

func contains(roster []string, name string) bool {
	for _, r := range roster {
		if r == name {
			return true
		}
	}
	return false
}

func TestRoster_Greenfield(t *testing.T) {
	roster := Roster(StackInfo{})

	if len(roster) != len(baseRoster) {
		t.Fatalf("greenfield roster: got %d agents, want %d", len(roster), len(baseRoster))
	}
	for _, name := range baseRoster {
		if !contains(roster, name) {
			t.Errorf("roster missing base agent %s", name)
		}
	}
}

func TestRoster_Go(t *testing.T) {
	roster := Roster(StackInfo{Language: "go", Framework: "stdlib"})

	for _, want := range []string{"sprint-orchestrator", "api-developer-go", "backend-code-reviewer-go"} {
		if !contains(roster, want) {
			t.Errorf("go roster missing %s: %v", want, roster)
		}
	}
	if contains(roster, "frontend-developer") {
		t.Errorf("go backend roster should not include frontend-developer: %v", roster)
	}
}

func TestRoster_TypeScriptReact(t *testing.T) {
	roster := Roster(StackInfo{Language: "typescript", Framework: "react"})

	for _, want := range []string{"api-developer-typescript", "frontend-developer"} {
		if !contains(roster, want) {
			t.Errorf("typescript roster missing %s: %v", want, roster)
		}
	}

	// frontend-developer reachable via both language and framework must
	// appear only once.
	count := 0
	for _, name := range roster {
		if name == "frontend-developer" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("frontend-developer appears %d times, want 1", count)
	}
}

func TestRoster_PythonDjango(t *testing.T) {
	roster := Roster(StackInfo{Language: "python", Framework: "django"})

	if !contains(roster, "api-developer-python") {
		t.Errorf("python roster missing api-developer-python: %v", roster)
	}
}

func TestRoster_UnknownLanguageGetsBase(t *testing.T) {
	roster := Roster(StackInfo{Language: "rust", Framework: "axum"})

	if len(roster) != len(baseRoster) {
		t.Errorf("rust roster: got %d agents, want base %d: %v", len(roster), len(baseRoster), roster)
	}
}

// roster.go maps a detected stack to the default agent roster.
package detect

// baseRoster lists the agents every project gets regardless of stack.
var baseRoster = []string{
	"sprint-orchestrator",
	"task-loop",
	"sprint-planner",
	"test-writer",
	"security-auditor",
	"root-cause-analyst",
}

// languageRosters appends implementation agents per detected language.
var languageRosters = map[string][]string{
	"go":         {"api-developer-go", "backend-code-reviewer-go"},
	"python":     {"api-developer-python"},
	"typescript": {"api-developer-typescript", "frontend-developer"},
	"javascript": {"api-developer-typescript", "frontend-developer"},
}

// frontendFrameworks are frameworks that warrant a frontend developer even
// when the language roster alone would not include one.
var frontendFrameworks = map[string]bool{
	"react": true,
	"next":  true,
	"vue":   true,
}

// Roster returns the agent names recommended for the detected stack.
// A zero StackInfo (greenfield) yields the base roster only.
func Roster(info StackInfo) []string {
	roster := make([]string, 0, len(baseRoster)+3)
	roster = append(roster, baseRoster...)

	seen := make(map[string]bool, len(roster))
	for _, name := range roster {
		seen[name] = true
	}
	add := func(names ...string) {
		for _, name := range names {
			if !seen[name] {
				seen[name] = true
				roster = append(roster, name)
			}
		}
	}

	add(languageRosters[info.Language]...)
	if frontendFrameworks[info.Framework] {
		add("frontend-developer")
	}

	return roster
}

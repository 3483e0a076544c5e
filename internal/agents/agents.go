// Package agents manages the agent definition corpus: the files compiled
// into the binary under prompts/agents/ and the per-project overrides in
// .devteam/agents/. Overrides shadow built-in agents by name.
package agents

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Agent is one agent definition: YAML frontmatter plus a markdown prompt
// body. Tools is the comma-separated scalar the host runtime expects, not
// a YAML list.
type Agent struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Model       string `yaml:"model,omitempty"`
	Tools       string `yaml:"tools,omitempty"`
	Memory      string `yaml:"memory,omitempty"`

	// Category is the corpus directory the agent was defined in
	// (orchestration, backend, ...). Empty for disk overrides.
	Category string `yaml:"-"`

	// Prompt is the markdown body below the frontmatter.
	Prompt string `yaml:"-"`

	// Override reports whether the definition came from .devteam/agents/
	// rather than the embedded corpus.
	Override bool `yaml:"-"`
}

// FixedModel reports whether the agent always runs at its declared model.
// Agents without a model field get one assigned per call by the
// orchestrator driving them.
func (a *Agent) FixedModel() bool {
	return a.Model != ""
}

// Render returns the canonical file form of the agent: frontmatter keys
// in fixed order (name, description, model, tools, memory), description
// double-quoted, then the prompt body.
func (a *Agent) Render() string {
	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "name: %s\n", a.Name)
	fmt.Fprintf(&b, "description: %q\n", a.Description)
	if a.Model != "" {
		fmt.Fprintf(&b, "model: %s\n", a.Model)
	}
	if a.Tools != "" {
		fmt.Fprintf(&b, "tools: %s\n", a.Tools)
	}
	if a.Memory != "" {
		fmt.Fprintf(&b, "memory: %s\n", a.Memory)
	}
	b.WriteString("---\n\n")
	b.WriteString(a.Prompt)
	if !strings.HasSuffix(a.Prompt, "\n") {
		b.WriteString("\n")
	}
	return b.String()
}

// parseAgent splits an agent file into frontmatter and body. The file
// must open with a "---" line; everything up to the closing "---" is
// parsed as YAML, the rest becomes the prompt.
func parseAgent(content []byte) (*Agent, error) {
	reader := bufio.NewReader(bytes.NewReader(content))

	firstLine, err := reader.ReadString('\n')
	if err != nil {
		return nil, errors.New("missing frontmatter")
	}
	if strings.TrimSpace(firstLine) != "---" {
		return nil, errors.New("missing frontmatter")
	}

	var frontmatter strings.Builder
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil, errors.New("unterminated frontmatter")
		}
		if strings.TrimSpace(line) == "---" {
			break
		}
		frontmatter.WriteString(line)
	}

	var agent Agent
	if err := yaml.Unmarshal([]byte(frontmatter.String()), &agent); err != nil {
		return nil, fmt.Errorf("invalid frontmatter: %w", err)
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading prompt body: %w", err)
	}
	agent.Prompt = strings.TrimSpace(string(body))
	return &agent, nil
}

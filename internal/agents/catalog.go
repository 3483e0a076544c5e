package agents

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/devteam-dev/devteam/internal/workspace"
	"github.com/devteam-dev/devteam/prompts"
)

// ErrNotFound is returned by Get and Sync when no agent matches a name.
var ErrNotFound = errors.New("agent not found")

// Catalog resolves agents from the embedded corpus and the project's
// .devteam/agents/ directory. Disk overrides win on name collisions.
type Catalog struct {
	overrideDir string
}

// NewCatalog returns a catalog for the given project root.
func NewCatalog(projectRoot string) *Catalog {
	return &Catalog{overrideDir: workspace.AgentsPath(projectRoot)}
}

// List returns every known agent sorted by name. Each name appears once;
// a disk override replaces the built-in definition of the same name.
func (c *Catalog) List() ([]*Agent, error) {
	byName := map[string]*Agent{}

	builtin, err := builtinAgents()
	if err != nil {
		return nil, err
	}
	for _, a := range builtin {
		byName[a.Name] = a
	}

	overrides, err := c.overrideAgents()
	if err != nil {
		return nil, err
	}
	for _, a := range overrides {
		byName[a.Name] = a
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	agents := make([]*Agent, 0, len(names))
	for _, name := range names {
		agents = append(agents, byName[name])
	}
	return agents, nil
}

// Get returns the agent with the given name, override first.
func (c *Catalog) Get(name string) (*Agent, error) {
	all, err := c.List()
	if err != nil {
		return nil, err
	}
	for _, a := range all {
		if a.Name == name {
			return a, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Sync materializes the named built-in agents into .devteam/agents/ in
// canonical form. Files that already exist are skipped unless force is
// set. Returns the paths written.
func (c *Catalog) Sync(names []string, force bool) ([]string, error) {
	if err := os.MkdirAll(c.overrideDir, 0755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", c.overrideDir, err)
	}

	builtin, err := builtinAgents()
	if err != nil {
		return nil, err
	}
	byName := make(map[string]*Agent, len(builtin))
	for _, a := range builtin {
		byName[a.Name] = a
	}

	var written []string
	for _, name := range names {
		agent, ok := byName[name]
		if !ok {
			return written, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		dst := filepath.Join(c.overrideDir, name+".md")
		if !force {
			if _, err := os.Stat(dst); err == nil {
				continue
			}
		}
		if err := os.WriteFile(dst, []byte(agent.Render()), 0644); err != nil {
			return written, fmt.Errorf("writing %s: %w", dst, err)
		}
		written = append(written, dst)
	}
	return written, nil
}

// Normalize rewrites every override file into canonical frontmatter
// order, leaving already-canonical files untouched. Returns the paths it
// rewrote.
func (c *Catalog) Normalize() ([]string, error) {
	entries, err := os.ReadDir(c.overrideDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", c.overrideDir, err)
	}

	var rewritten []string
	for _, entry := range entries {
		if !isAgentFile(entry) {
			continue
		}
		p := filepath.Join(c.overrideDir, entry.Name())
		content, err := os.ReadFile(p)
		if err != nil {
			return rewritten, fmt.Errorf("reading %s: %w", p, err)
		}
		agent, err := parseAgent(content)
		if err != nil {
			return rewritten, fmt.Errorf("parsing %s: %w", p, err)
		}
		if agent.Name == "" {
			agent.Name = strings.TrimSuffix(entry.Name(), ".md")
		}
		canonical := agent.Render()
		if canonical == string(content) {
			continue
		}
		if err := os.WriteFile(p, []byte(canonical), 0644); err != nil {
			return rewritten, fmt.Errorf("writing %s: %w", p, err)
		}
		rewritten = append(rewritten, p)
	}
	return rewritten, nil
}

// Builtin returns every agent compiled into the binary, ignoring disk
// overrides.
func Builtin() ([]*Agent, error) {
	return builtinAgents()
}

// builtinAgents parses the corpus compiled into the binary. The category
// is the directory component under agents/.
func builtinAgents() ([]*Agent, error) {
	var agents []*Agent
	err := fs.WalkDir(prompts.Files, "agents", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ".md") {
			return nil
		}
		content, err := fs.ReadFile(prompts.Files, p)
		if err != nil {
			return err
		}
		agent, err := parseAgent(content)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", p, err)
		}
		agent.Category = path.Base(path.Dir(p))
		if agent.Name == "" {
			agent.Name = strings.TrimSuffix(path.Base(p), ".md")
		}
		agents = append(agents, agent)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return agents, nil
}

// overrideAgents parses the project's .devteam/agents/ directory. A
// missing directory is not an error.
func (c *Catalog) overrideAgents() ([]*Agent, error) {
	entries, err := os.ReadDir(c.overrideDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", c.overrideDir, err)
	}

	var agents []*Agent
	for _, entry := range entries {
		if !isAgentFile(entry) {
			continue
		}
		p := filepath.Join(c.overrideDir, entry.Name())
		content, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		agent, err := parseAgent(content)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", p, err)
		}
		if agent.Name == "" {
			agent.Name = strings.TrimSuffix(entry.Name(), ".md")
		}
		agent.Override = true
		agents = append(agents, agent)
	}
	return agents, nil
}

// isAgentFile filters override directory entries. README.md is
// documentation, not an agent.
func isAgentFile(entry os.DirEntry) bool {
	if entry.IsDir() {
		return false
	}
	name := entry.Name()
	return strings.HasSuffix(name, ".md") && name != "README.md"
}

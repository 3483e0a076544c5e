// Package prompts embeds the built-in agent corpus.
//
// Agents live under agents/<category>/<name>.md, one file per agent,
// with a YAML frontmatter block followed by the prompt body.
package prompts

import "embed"

//go:embed agents
var Files embed.FS

package config

// GenerateConfigYAML returns the commented default configuration written by
// 'threadpatch init'.
func GenerateConfigYAML() string {
	return defaultYAML
}

const defaultYAML = `# threadpatch configuration
version: 1

# Color palette for syntax highlighting: light or dark.
theme: dark

# Upper bounds on the diff text one merge may read. Patches past the budget
# are skipped, newest last. 0 disables a limit.
limits:
  max_chars: 2000000
  max_lines: 100000

output:
  # diff | json | sarif | sections
  format: diff
  color: true

highlight:
  enabled: true
  light_style: github
  dark_style: monokai
`

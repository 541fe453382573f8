package ollama

import "strings"

// ExtractCommand pulls the first plausible command line out of a free-text
// completion. Models occasionally wrap the answer in a code fence or prefix
// it with a shell prompt despite the instructions.
func ExtractCommand(content string) string {
	if code := extractCodeFence(content); code != "" {
		content = code
	}
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = strings.TrimPrefix(line, "$ ")
		return strings.TrimSpace(line)
	}
	return ""
}

// extractCodeFence returns the body of the first ``` fenced block, with any
// language marker line removed.
func extractCodeFence(content string) string {
	start := strings.Index(content, "```")
	if start == -1 {
		return ""
	}
	rest := content[start+3:]
	end := strings.Index(rest, "```")
	if end == -1 {
		// unterminated fence, treat the remainder as the block
		end = len(rest)
	}
	block := rest[:end]
	lines := strings.Split(block, "\n")
	if len(lines) > 0 {
		first := strings.TrimSpace(lines[0])
		if first == "sh" || first == "bash" || first == "shell" || first == "zsh" {
			lines = lines[1:]
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

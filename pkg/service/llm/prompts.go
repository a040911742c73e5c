package llm

import (
	"embed"
	"strings"
)

//go:embed prompts/*.md
var promptFS embed.FS

// SystemPromptVerify returns the hostile-auditor system prompt used by the
// verify route
func SystemPromptVerify() string {
	return readPrompt("prompts/verify.md")
}

// SystemPromptInvestigate returns the investigator system prompt used by
// the investigate route
func SystemPromptInvestigate() string {
	return readPrompt("prompts/investigate.md")
}

func readPrompt(path string) string {
	data, err := promptFS.ReadFile(path)
	if err != nil {
		// The prompts are embedded at build time; a missing file is a
		// packaging bug, not a runtime condition.
		panic("embedded prompt missing: " + path)
	}
	return strings.TrimSpace(string(data))
}

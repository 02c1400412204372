package prompt

import (
	_ "embed"
	"strings"
)

//go:embed template/system.txt
var systemRaw string

// System returns the agent's system prompt with the product knowledge base
// appended. An empty knowledge base leaves the base prompt untouched.
func System(knowledgeBase string) string {
	base := strings.TrimSpace(systemRaw)
	kb := strings.TrimSpace(knowledgeBase)
	if kb == "" {
		return base
	}
	return base + "\n\n## Product Knowledge Base\n\n" + kb
}

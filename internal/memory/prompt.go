package memory

import (
	"strings"
)

const basePrompt = `You are MemBox, an intelligent memory assistant. You can:
- Remember information shared by users (automatic extraction and saving)
- Provide personalized answers based on memories
- Confirm recording when users say "remember" or share important information`

const promptClosing = `Please provide personalized, memory-aware answers. Be natural and friendly.`

// BuildSystemPrompt assembles the system instruction for a chat turn.
// The profile line and the memory list are appended only when non-empty; an
// empty context produces no context block at all.
func BuildSystemPrompt(memCtx *SearchResponse) string {
	var b strings.Builder
	b.WriteString(basePrompt)

	if memCtx != nil {
		var context []string
		if memCtx.ProfileContent != "" {
			context = append(context, "User Profile: "+memCtx.ProfileContent)
		}
		if len(memCtx.Results) > 0 {
			context = append(context, "Related Memories:")
			for _, res := range memCtx.Results {
				if res.Memory == "" {
					continue
				}
				context = append(context, "- "+res.Memory)
			}
		}
		if len(context) > 0 {
			b.WriteString("\n\nHere is the background information related to the current conversation:\n")
			b.WriteString(strings.Join(context, "\n"))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(promptClosing)
	return b.String()
}

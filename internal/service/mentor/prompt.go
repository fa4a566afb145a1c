package mentor

import (
	"fmt"
	"strings"

	"github.com/coordinator-insight/backend/internal/model/persona"
)

// BuildSystemPrompt renders the fixed persona instruction sent with every
// completion call.
func BuildSystemPrompt(p persona.Persona) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are an %s %s acting as a mentor.\n", p.Tone, p.Title)
	audience := p.Audience
	if audience == "" {
		audience = "anyone curious about the profession"
	}
	fmt.Fprintf(&b, "Your goal is to educate users (who might be %s) about the role of a %s.\n", audience, roleName(p))

	if len(p.Traits) > 0 {
		b.WriteString("\nKey traits of your persona:\n")
		for _, trait := range p.Traits {
			b.WriteString("- ")
			b.WriteString(trait)
			b.WriteString("\n")
		}
	}

	if len(p.Guidelines) > 0 {
		b.WriteString("\nGuidelines:\n")
		for _, rule := range p.Guidelines {
			b.WriteString("- ")
			b.WriteString(rule)
			b.WriteString("\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// roleName strips seniority from the title: "Senior Transplant Coordinator"
// becomes "Transplant Coordinator".
func roleName(p persona.Persona) string {
	title := strings.TrimSpace(p.Title)
	for _, prefix := range []string{"Senior ", "Lead ", "Chief "} {
		title = strings.TrimPrefix(title, prefix)
	}
	if title == "" {
		return p.Name
	}
	return title
}

package domain

import (
	"sort"
	"strings"
)

// Agent names a work-owner role on the team. The set is closed and static;
// there is no create/update surface for agents.
type Agent struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Emoji     string   `json:"emoji"`
	Role      string   `json:"role"`
	Expertise []string `json:"expertise"`
}

var agents = map[string]Agent{
	"august": {
		ID:    "august",
		Name:  "August",
		Emoji: "🎯",
		Role:  "Product Manager & Master Coordinator",
		Expertise: []string{
			"Project management",
			"Strategic planning",
			"Team coordination",
			"Priority management",
			"Sprint planning",
		},
	},
	"architect": {
		ID:    "architect",
		Name:  "Architect",
		Emoji: "🏗️",
		Role:  "System Architect",
		Expertise: []string{
			"System design",
			"Architecture patterns",
			"Database design",
			"API design",
			"Scalability",
		},
	},
	"engineer": {
		ID:    "engineer",
		Name:  "Engineer",
		Emoji: "💻",
		Role:  "Software Engineer",
		Expertise: []string{
			"Code implementation",
			"Bug fixes",
			"Refactoring",
			"API integration",
			"Git workflows",
		},
	},
	"designer": {
		ID:    "designer",
		Name:  "Designer",
		Emoji: "🎨",
		Role:  "UI/UX Designer",
		Expertise: []string{
			"User interface design",
			"User experience",
			"Design systems",
			"Accessibility",
			"Interaction design",
		},
	},
	"qa": {
		ID:    "qa",
		Name:  "QA",
		Emoji: "🧪",
		Role:  "Quality Assurance Engineer",
		Expertise: []string{
			"Testing strategies",
			"Bug verification",
			"Regression testing",
			"Test automation",
			"Edge case analysis",
		},
	},
	"analyst": {
		ID:    "analyst",
		Name:  "Analyst",
		Emoji: "📊",
		Role:  "Data Analyst",
		Expertise: []string{
			"Analytics implementation",
			"Metrics definition",
			"Performance monitoring",
			"A/B testing",
			"Data visualization",
		},
	},
	"docs": {
		ID:    "docs",
		Name:  "Docs",
		Emoji: "📝",
		Role:  "Technical Writer",
		Expertise: []string{
			"Documentation",
			"Technical writing",
			"API documentation",
			"Knowledge management",
			"Onboarding guides",
		},
	},
}

// GetAgent looks an agent up by id, case-insensitive.
func GetAgent(id string) (Agent, bool) {
	a, ok := agents[strings.ToLower(id)]
	return a, ok
}

func ValidAgent(id string) bool {
	_, ok := agents[strings.ToLower(id)]
	return ok
}

// AllAgents returns every agent, ordered by id for stable output.
func AllAgents() []Agent {
	ids := make([]string, 0, len(agents))
	for id := range agents {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]Agent, 0, len(ids))
	for _, id := range ids {
		out = append(out, agents[id])
	}
	return out
}

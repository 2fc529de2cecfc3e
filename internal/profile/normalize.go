package profile

import "strings"

// skillNormalizations maps common skill name variants to canonical names
var skillNormalizations = map[string]string{
	"golang":        "Go",
	"go lang":       "Go",
	"javascript":    "JavaScript",
	"js":            "JavaScript",
	"typescript":    "TypeScript",
	"ts":            "TypeScript",
	"k8s":           "Kubernetes",
	"kubernetes":    "Kubernetes",
	"react.js":      "React",
	"reactjs":       "React",
	"node.js":       "Node.js",
	"nodejs":        "Node.js",
	"postgres":      "PostgreSQL",
	"postgresql":    "PostgreSQL",
	"dotnet":        ".NET",
	".net":          ".NET",
	"csharp":        "C#",
	"c#":            "C#",
	"cosmosdb":      "Cosmos DB",
	"openai":        "OpenAI",
	"langchain":     "LangChain",
	"graphql":       "GraphQL",
	"devops":        "DevOps",
	"saas":          "SaaS",
	"next.js":       "Next.js",
	"nextjs":        "Next.js",
	"sql server":    "SQL Server",
	"mssql":         "SQL Server",
	"gen ai":        "Generative AI",
	"genai":         "Generative AI",
	"generative ai": "Generative AI",
}

// NormalizeSkillName maps a skill name to its canonical form.
// Unknown all-lowercase single words get a leading capital; acronyms and mixed case are kept.
func NormalizeSkillName(skillName string) string {
	normalized := strings.TrimSpace(skillName)
	if normalized == "" {
		return ""
	}

	lower := strings.ToLower(normalized)
	if canonical, ok := skillNormalizations[lower]; ok {
		return canonical
	}

	if normalized == lower && !strings.Contains(normalized, " ") {
		return strings.ToUpper(normalized[:1]) + normalized[1:]
	}
	return normalized
}

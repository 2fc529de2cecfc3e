// Package jd detects job description text and extracts structured requirements from it.
package jd

import (
	"regexp"

	"github.com/jonathan/job-fit-analyzer/internal/types"
)

// strongIndicators are explicit job description phrases
var strongIndicators = []string{
	"job description",
	"position summary",
	"role overview",
	"responsibilities",
	"qualifications",
	"requirements",
	"we are looking for",
	"we are seeking",
	"the ideal candidate",
	"you will",
	"you will be responsible",
	"what you'll do",
	"what we're looking for",
	"about the role",
	"about the position",
	"job responsibilities",
	"key responsibilities",
	"core responsibilities",
	"essential duties",
	"required skills",
	"required experience",
	"preferred qualifications",
	"nice to have",
	"must have",
	"minimum qualifications",
	"basic qualifications",
}

// moderateIndicators are softer signals common in postings
var moderateIndicators = []string{
	"experience with",
	"experience in",
	"years of experience",
	"proficiency in",
	"knowledge of",
	"familiar with",
	"background in",
	"degree in",
	"bachelor",
	"master",
	"salary",
	"compensation",
	"benefits",
	"remote",
	"hybrid",
	"on-site",
	"full-time",
	"part-time",
	"contract",
	"apply now",
	"apply here",
	"equal opportunity",
	"eeo",
}

// techPatterns are grouped by domain: languages, frontend, backend, cloud, databases, AI/ML, tools.
var techPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(javascript|typescript|python|java|c\+\+|c#|ruby|go|golang|rust|kotlin|swift|scala|php|perl)\b`),
	regexp.MustCompile(`(?i)\b(react|angular|vue|svelte|next\.?js|nuxt|gatsby|remix|astro|tailwind|css|sass|scss|html5?|webpack|vite)\b`),
	regexp.MustCompile(`(?i)\b(node\.?js|express|fastify|nest\.?js|django|flask|fastapi|spring|\.net|rails|laravel|asp\.net|graphql|rest|grpc)\b`),
	regexp.MustCompile(`(?i)\b(aws|azure|gcp|google cloud|kubernetes|k8s|docker|terraform|ansible|jenkins|ci/cd|github actions|gitlab|vercel|netlify)\b`),
	regexp.MustCompile(`(?i)\b(postgresql|postgres|mysql|mongodb|redis|elasticsearch|dynamodb|cosmos ?db|supabase|firebase|sql server|oracle|cassandra)\b`),
	regexp.MustCompile(`(?i)\b(machine learning|deep learning|nlp|computer vision|tensorflow|pytorch|scikit-learn|openai|langchain|llm|gpt|claude|anthropic|rag)\b`),
	regexp.MustCompile(`(?i)\b(git|agile|scrum|jira|confluence|figma|microservices|serverless|api|sdk|saas|devops|sre|mlops)\b`),
}

// techCanonical maps lower-cased matches to display names. Anything absent keeps the casing found in the text.
var techCanonical = map[string]string{
	"golang":     "Go",
	"go":         "Go",
	"node.js":    "Node.js",
	"nodejs":     "Node.js",
	"next.js":    "Next.js",
	"nextjs":     "Next.js",
	"nest.js":    "NestJS",
	"nestjs":     "NestJS",
	"typescript": "TypeScript",
	"javascript": "JavaScript",
	"python":     "Python",
	"postgresql": "PostgreSQL",
	"postgres":   "PostgreSQL",
	"cosmosdb":   "Cosmos DB",
	"cosmos db":  "Cosmos DB",
}

// experiencePatterns are tried in order; the first pattern with a match wins.
var experiencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+)\+?\s*(?:years?|yrs?)(?:\s+of)?\s+(?:experience|exp)`),
	regexp.MustCompile(`(?i)(?:minimum|at least|required)\s+(\d+)\s*(?:years?|yrs?)`),
	regexp.MustCompile(`(?i)(\d+)\s*-\s*(\d+)\s*(?:years?|yrs?)`),
}

type seniorityPattern struct {
	re    *regexp.Regexp
	level types.SeniorityLevel
}

// seniorityPatterns are ordered staff+ > senior > mid > junior > intern
var seniorityPatterns = []seniorityPattern{
	{regexp.MustCompile(`(?i)\b(principal|staff|distinguished|fellow)\b`), types.SeniorityStaffPlus},
	{regexp.MustCompile(`(?i)\b(senior|sr\.?|lead|team lead)\b`), types.SenioritySenior},
	{regexp.MustCompile(`(?i)\b(mid[- ]?level|intermediate)\b`), types.SeniorityMid},
	{regexp.MustCompile(`(?i)\b(junior|jr\.?|entry[- ]?level|associate|early career)\b`), types.SeniorityJunior},
	{regexp.MustCompile(`(?i)\b(intern|internship)\b`), types.SeniorityIntern},
}

type educationPattern struct {
	re    *regexp.Regexp
	label string
}

var educationPatterns = []educationPattern{
	{regexp.MustCompile(`(?i)\b(?:bachelor'?s?\b|b\.s\.|b\.a\.|(?:bs|ba)\s+(?:degree|in)\b)`), "bachelor's"},
	{regexp.MustCompile(`(?i)\b(?:master'?s?\b|m\.s\.|m\.a\.|mba\b|(?:ms|ma)\s+(?:degree|in)\b)`), "master's"},
	{regexp.MustCompile(`(?i)\b(?:ph\.?d\b|doctorate\b)`), "phd"},
}

var (
	niceToHaveHeaders = []string{"nice to have", "preferred", "bonus"}
	mustHaveHeaders   = []string{"requirements", "qualifications", "must have", "required"}
	sectionEndHeaders = []string{"responsibilities", "you will", "what you'll do"}
)

var (
	bulletPrefixRe   = regexp.MustCompile(`^(?:[-•*·]|\d+\.)`)
	bulletStripRe    = regexp.MustCompile(`^(?:[-•*·]\s*|\d+\.\s*)`)
	titleFieldRe     = regexp.MustCompile(`(?i)(?:job title|position|role):\s*([^\n]+)`)
	titleLineRe      = regexp.MustCompile(`(?im)^#?\s*(.+?(?:engineer|developer|manager|director|lead|architect|analyst|designer)[^\n]*)`)
	companyFieldRe   = regexp.MustCompile(`(?i)(?:company|employer|at|about):\s*([^\n]+)`)
	companyPhraseRe  = regexp.MustCompile(`(?i)(?:join|about)\s+([A-Z][A-Za-z0-9\s]+?)\s+(?:is|as|team|we)`)
	locationFieldRe  = regexp.MustCompile(`(?i)(?:location|based in|office):\s*([^\n]+)`)
	locationWordRe   = regexp.MustCompile(`(?i)\b(remote|hybrid|on-?site)\b`)
	employmentTypeRe = regexp.MustCompile(`(?i)\b(full[- ]?time|part[- ]?time|contract|freelance|internship)\b`)
)

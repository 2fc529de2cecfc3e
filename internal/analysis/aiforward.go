package analysis

import "strings"

// aiKeywords is the AI/ML vocabulary used for both the technology intersection and the raw text scan
var aiKeywords = []string{
	"machine learning", "deep learning", "nlp", "natural language processing",
	"computer vision", "tensorflow", "pytorch", "scikit-learn", "openai",
	"langchain", "llm", "gpt", "claude", "anthropic", "rag", "retrieval augmented",
	"ai", "artificial intelligence", "ml", "generative ai", "gen ai", "genai",
	"vector database", "embeddings", "transformer", "neural network",
	"hugging face", "huggingface", "fine-tuning", "prompt engineering",
}

// cultureIndicators mark a company that builds AI rather than merely using AI tools
var cultureIndicators = []string{
	"ai-first", "ai first", "ai-native", "ai native", "ai-forward", "ai forward",
	"building ai", "developing ai", "ai product", "ai platform", "ai startup",
	"llm product", "ai company", "ml platform", "ai infrastructure",
}

var aiKeywordSet = func() map[string]bool {
	m := make(map[string]bool, len(aiKeywords))
	for _, k := range aiKeywords {
		m[k] = true
	}
	return m
}()

// DetectAIForward runs the three-tier cascade over lower-cased posting text and the
// extracted technologies. The first tier that qualifies decides the result.
func DetectAIForward(lowerText string, technologies []string) (bool, float64) {
	culture := countContained(lowerText, cultureIndicators)
	if culture > 0 {
		return true, min(0.9+float64(culture)*0.05, 1.0)
	}

	techMatches := 0
	seen := make(map[string]bool, len(technologies))
	for _, t := range technologies {
		lt := strings.ToLower(t)
		if seen[lt] {
			continue
		}
		seen[lt] = true
		if aiKeywordSet[lt] {
			techMatches++
		}
	}
	if techMatches >= 3 {
		return true, min(0.7+float64(techMatches)*0.05, 0.95)
	}

	keywordMatches := countContained(lowerText, aiKeywords)
	if techMatches >= 1 || keywordMatches >= 3 {
		confidence := min(0.4+float64(techMatches)*0.15+float64(keywordMatches)*0.05, 0.8)
		return confidence > 0.5, confidence
	}

	return false, 0.1
}

func countContained(text string, needles []string) int {
	n := 0
	for _, needle := range needles {
		if strings.Contains(text, needle) {
			n++
		}
	}
	return n
}

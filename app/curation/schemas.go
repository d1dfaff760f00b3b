package curation

import (
	"fmt"
	"slices"
	"strings"
)

// Content classification types accepted by Structure.
const (
	TypeNews     = "News"
	TypeResearch = "Research"
	TypeAnalysis = "Analysis"
	TypeHowTo    = "How-to"
)

// SchemaField is one analytical question the AI is asked to answer. Field
// names double as the keys of the structured JSON object.
type SchemaField struct {
	Name        string
	Instruction string
}

var scoringSubFields = []SchemaField{
	{"Relevance Score", "Score from 1-10 for target tech audience."},
	{"Popularity Score", "How much buzz/interest this topic generally generates (1-10)."},
	{"Breakthrough Score", "Is this a significant advancement or just routine news? (1-10)."},
	{"Translation Recommendation", "Should we invest time in a high-quality Telugu translation? (Yes/No/Maybe and why)."},
}

var typeFields = map[string][]SchemaField{
	TypeNews: {
		{"Topic Overview", "What is this news about in one sentence?"},
		{"Changes & Updates", "What has changed? Any new features or updates?"},
		{"Context & Background", "Brief background info to help the reader understand the context."},
		{"Expected Timeline", "When is this expected to be released or implemented?"},
		{"Value Proposition", "What is the primary value or impact of this news?"},
		{"Competitive Landscape", "How does this compare to competitors or existing solutions?"},
	},
	TypeResearch: {
		{"Research Goal", "What problem is this research trying to solve?"},
		{"Methodology", "Briefly describe how the research was conducted."},
		{"Key Findings", "What are the most important results?"},
		{"Impact & Implications", "How does this research change the field?"},
		{"Limitations", "What are the stated or apparent limitations of the work?"},
	},
	TypeAnalysis: {
		{"Subject of Analysis", "What specific trend, company, or tech is being analyzed?"},
		{"Core Arguments", "What are the main points or arguments made in the analysis?"},
		{"Data & Evidence", "What evidence is provided to support the claims?"},
		{"Future Outlook", "What does the analysis predict for the future?"},
		{"Recommendations", "What actions are suggested based on this analysis?"},
	},
	TypeHowTo: {
		{"Objective", "What will the reader achieve by following this guide?"},
		{"Prerequisites", "What tools, knowledge, or setup is required?"},
		{"Step-by-Step Breakdown", "Outline the main phases or steps of the process."},
		{"Troubleshooting & Tips", "Mention common pitfalls or helpful advice."},
		{"Final Result", "What is the end state after following the guide?"},
	},
}

var detailedSummaryInstructions = map[string]string{
	TypeNews:     "A comprehensive summary of the entire news piece.",
	TypeResearch: "A comprehensive technical summary of the research.",
	TypeAnalysis: "A comprehensive summary of the analysis.",
	TypeHowTo:    "A comprehensive summary of the how-to guide.",
}

// ContentTypes returns the supported classification types.
func ContentTypes() []string {
	return []string{TypeNews, TypeResearch, TypeAnalysis, TypeHowTo}
}

// Schema returns the ordered field list for a content type: type-specific
// questions, then the shared scoring/verification fields, then the detailed
// summary. ok is false for an unsupported type.
func Schema(contentType string) ([]SchemaField, bool) {
	specific, ok := typeFields[contentType]
	if !ok {
		return nil, false
	}

	fields := slices.Clone(specific)
	fields = append(fields,
		SchemaField{"Major Highlights", "List 5-10 key takeaways or top highlights from the article."},
		SchemaField{"Key Technologies & Keywords", "Identify major technologies, companies, or keywords mentioned."},
		SchemaField{"Scoring & Evaluation", scoringInstruction()},
		SchemaField{"Verification & Sources", "Suggest 2-3 specific search queries to find more authoritative blog posts or 'top 10' lists on this topic for manual verification."},
		SchemaField{"Detailed Summary", detailedSummaryInstructions[contentType]},
	)

	return fields, true
}

// SchemaFields returns the exact key set expected in the structured response.
func SchemaFields(contentType string) ([]string, bool) {
	fields, ok := Schema(contentType)
	if !ok {
		return nil, false
	}
	names := make([]string, len(fields))
	for i, field := range fields {
		names[i] = field.Name
	}
	return names, true
}

func scoringInstruction() string {
	var b strings.Builder
	b.WriteString("Provide the following sub-fields:")
	for _, sub := range scoringSubFields {
		fmt.Fprintf(&b, "\n- %s: %s", sub.Name, sub.Instruction)
	}
	return b.String()
}

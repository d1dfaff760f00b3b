package curation

import (
	"fmt"
	"strings"
)

func summaryPrompt(content string) string {
	var b strings.Builder
	b.WriteString("Summarize the following article in a concise and informative way, capturing the key points.\n")
	b.WriteString("The summary should be suitable for a tech news platform.\n\n")
	b.WriteString("Article:\n---\n")
	b.WriteString(content)
	b.WriteString("\n---\n\nSummary:\n")
	return b.String()
}

func structurePrompt(schema []SchemaField, content string) string {
	var b strings.Builder
	b.WriteString("You are an expert tech content analyst. Analyze the following article and structure it according to the requested fields.\n\n")
	b.WriteString("REQUIRED FIELDS AND INSTRUCTIONS:\n")
	for _, field := range schema {
		fmt.Fprintf(&b, "%q: %s\n", field.Name, field.Instruction)
	}
	b.WriteString("\nOUTPUT FORMAT:\n")
	b.WriteString("You must output a VALID JSON object where the keys are the field names exactly as listed above.\n")
	b.WriteString("The values should be your detailed analysis based on the article content.\n")
	b.WriteString("Do not include any markdown formatting (like ```json) in your response, just the raw JSON object.\n\n")
	b.WriteString("ARTICLE CONTENT:\n---\n")
	b.WriteString(content)
	b.WriteString("\n---\n")
	return b.String()
}

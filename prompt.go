package glotline

import (
	"encoding/json"
	"fmt"
	"strings"
)

// PromptContentMarker precedes the chunk content at the end of every
// translation prompt. Test doubles use it to locate the payload.
const PromptContentMarker = "Content to translate:"

// BuildPrompt renders a chunk's content plus optional style-guide context
// into a single translation instruction string.
//
// The fixed rules are always present in the same order. Project context,
// the general style instruction and the locale-specific instruction are
// each omitted entirely when absent. The chunk content comes last,
// pretty-printed.
func BuildPrompt(content Document, targetLang string, sg *StyleGuide) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "Translate the JSON content below to %s.\n\n", GetLanguageName(targetLang))

	b.WriteString("Rules:\n")
	b.WriteString("1. Preserve the JSON structure and all keys exactly.\n")
	b.WriteString("2. Translate only string values.\n")
	b.WriteString("3. Return only complete, valid JSON starting with { and ending with }.\n")
	b.WriteString("4. Keep numbers, booleans and null values unchanged.\n")
	b.WriteString("5. Ensure all brackets and braces are balanced.\n")

	if sg != nil && sg.Project != nil {
		var lines []string
		if sg.Project.Description != "" {
			lines = append(lines, "Project: "+sg.Project.Description)
		}
		if sg.Project.Domain != "" {
			lines = append(lines, "Domain: "+sg.Project.Domain)
		}
		if sg.Project.Audience != "" {
			lines = append(lines, "Audience: "+sg.Project.Audience)
		}
		if len(lines) > 0 {
			b.WriteString("\nContext:\n")
			for _, line := range lines {
				b.WriteString(line)
				b.WriteByte('\n')
			}
		}
	}

	if sg != nil && sg.General != "" {
		b.WriteString("\nStyle guide:\n")
		b.WriteString(sg.General)
		b.WriteByte('\n')
	}

	if instruction := sg.LocaleInstruction(targetLang); instruction != "" {
		fmt.Fprintf(&b, "\nStyle guide for %s:\n%s\n", targetLang, instruction)
	}

	pretty, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serializing chunk content: %w", err)
	}

	b.WriteString("\n" + PromptContentMarker + "\n")
	b.Write(pretty)

	return b.String(), nil
}

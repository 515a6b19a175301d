package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// codeBlockPattern matches markdown code blocks with optional language tag
// Captures: (1) optional language, (2) content
var codeBlockPattern = regexp.MustCompile(`(?s)` + "```" + `(\w*)\s*\n(.+?)\n` + "```")

// ratingPattern matches the first integer or decimal number in a response
var ratingPattern = regexp.MustCompile(`-?\d+(\.\d+)?`)

// ExtractJSON extracts JSON from an LLM response that may be wrapped in markdown.
// Priority:
// 1. JSON inside ```json ... ``` or ``` ... ``` code blocks
// 2. Raw JSON object {...} or array [...] in the response
//
// Returns the extracted JSON string and any error.
func ExtractJSON(response string) (string, error) {
	if jsonStr, found := extractFromCodeBlock(response); found {
		if isValidJSON(jsonStr) {
			return jsonStr, nil
		}
	}

	if jsonStr, found := extractRawJSON(response); found {
		return jsonStr, nil
	}

	return "", fmt.Errorf("no valid JSON object found in response")
}

// ExtractRating parses a numeric rating from an LLM response. Judge prompts
// ask for a bare number, but models wrap answers in prose or markdown often
// enough that tolerant extraction is required. The first number in the
// response wins.
func ExtractRating(response string) (float64, error) {
	match := ratingPattern.FindString(response)
	if match == "" {
		return 0, fmt.Errorf("no numeric rating found in response")
	}

	rating, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse rating %q: %w", match, err)
	}
	return rating, nil
}

// extractFromCodeBlock finds JSON in markdown code blocks.
func extractFromCodeBlock(response string) (string, bool) {
	matches := codeBlockPattern.FindAllStringSubmatch(response, -1)

	for _, match := range matches {
		if len(match) < 3 {
			continue
		}

		lang := strings.ToLower(match[1])
		content := strings.TrimSpace(match[2])

		if lang != "" && lang != "json" {
			continue
		}
		if strings.HasPrefix(content, "{") || strings.HasPrefix(content, "[") {
			return content, true
		}
	}

	return "", false
}

// extractRawJSON finds the first balanced JSON object or array in the response.
func extractRawJSON(response string) (string, bool) {
	for _, pair := range [][2]byte{{'{', '}'}, {'[', ']'}} {
		start := strings.IndexByte(response, pair[0])
		if start < 0 {
			continue
		}

		depth := 0
		inString := false
		escaped := false
		for i := start; i < len(response); i++ {
			c := response[i]
			if escaped {
				escaped = false
				continue
			}
			switch {
			case c == '\\' && inString:
				escaped = true
			case c == '"':
				inString = !inString
			case inString:
			case c == pair[0]:
				depth++
			case c == pair[1]:
				depth--
				if depth == 0 {
					candidate := response[start : i+1]
					if isValidJSON(candidate) {
						return candidate, true
					}
				}
			}
		}
	}

	return "", false
}

// isValidJSON reports whether s parses as JSON.
func isValidJSON(s string) bool {
	return json.Valid([]byte(s))
}

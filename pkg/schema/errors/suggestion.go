package errors

import (
	"fmt"
	"strings"
)

// maxSuggestDistance is the largest edit distance still worth suggesting.
const maxSuggestDistance = 3

// SuggestValue suggests the closest allowed value for an unknown one.
// It uses Levenshtein distance and falls back to listing the allowed values.
func SuggestValue(unknown string, allowed []string) string {
	if len(allowed) == 0 {
		return ""
	}

	minDistance := maxSuggestDistance + 1
	var bestMatch string

	lowered := strings.ToLower(unknown)
	for _, value := range allowed {
		dist := levenshteinDistance(lowered, value)
		if dist < minDistance {
			minDistance = dist
			bestMatch = value
		}
	}

	if bestMatch != "" {
		return fmt.Sprintf("Did you mean '%s'?", bestMatch)
	}
	return fmt.Sprintf("Valid values: %s", strings.Join(allowed, ", "))
}

// SuggestMissingField suggests adding a required field.
func SuggestMissingField(fieldName string, exampleValue string) string {
	if exampleValue != "" {
		return fmt.Sprintf("Add \"%s\": %s to the document", fieldName, exampleValue)
	}
	return fmt.Sprintf("Add \"%s\" to the document", fieldName)
}

// levenshteinDistance computes the Levenshtein distance between two strings.
func levenshteinDistance(s1, s2 string) int {
	if s1 == s2 {
		return 0
	}

	len1 := len(s1)
	len2 := len(s2)

	matrix := make([][]int, len1+1)
	for i := range matrix {
		matrix[i] = make([]int, len2+1)
	}

	for i := 0; i <= len1; i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len2; j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len1; i++ {
		for j := 1; j <= len2; j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}

			matrix[i][j] = min(
				matrix[i-1][j]+1,      // Deletion
				matrix[i][j-1]+1,      // Insertion
				matrix[i-1][j-1]+cost, // Substitution
			)
		}
	}

	return matrix[len1][len2]
}

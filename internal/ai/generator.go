// internal/ai/generator.go

// Package ai holds the two external text-generation capabilities of the
// service: structuring free-text answers into a profile and explaining
// chosen cards. Anything implementing ContentGenerator can back them.
package ai

import "context"

// ContentGenerator is the minimal text-generation contract. The Gemini
// client satisfies it in production; tests inject fakes.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

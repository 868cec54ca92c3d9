/*
Package ai provides the generative text and image providers behind the
article composer and the feature image producer.
*/
package ai

import "context"

// TextGenerator produces long-form body text from a system instruction and
// a user prompt. Implementations make exactly one attempt; the caller owns
// the fallback.
type TextGenerator interface {
	GenerateText(ctx context.Context, system, user string) (string, error)
}

// ImageGenerator produces a PNG for a prompt, returned as decoded bytes.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) ([]byte, error)
}

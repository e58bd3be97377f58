// Package pipeline drives the two-stage generation flow over stored
// profiles: the prompt stage asks a language model for a prompt pair, the
// image stage renders and saves a portrait for every profile whose prompts
// exist. Each stage selects its pending profiles from stored status flags, so
// interrupted runs resume without repeating completed work.
package pipeline

// Package openrouter calls the OpenRouter chat completion API to turn a
// stored profile into a positive and negative Stable Diffusion prompt pair.
package openrouter

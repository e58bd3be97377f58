// Package services defines the shared error taxonomy for external service
// clients. Subpackages implement the OpenRouter chat API used for prompt
// generation and the Stable Diffusion WebUI API used for image rendering.
package services

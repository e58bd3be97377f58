// Package sdwebui calls the Stable Diffusion WebUI txt2img endpoint to render
// portrait images from stored prompt pairs.
package sdwebui

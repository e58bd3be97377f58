// Package textutil provides filename and token sanitization shared by the
// output path resolver and CLI rendering.
package textutil

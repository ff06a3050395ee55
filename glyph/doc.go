// Package glyph turns the custom decoration kinds into coloured-region
// geometry the runtime can draw.
//
// Each kind owns a template: points in the unit square and triangles over
// them, stored as 4-tuples whose last slot is 0. Lookup composes the template
// for one symbol's parameters and picks its rotation; Render rotates the
// points about (0.5,0.5), maps the unit square onto the 2×2 step box around
// the cell and appends points and re-based triangles to shared Buffers.
//
// Parameters outside a kind's table render nothing and report false.
package glyph

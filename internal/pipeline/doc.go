// Package pipeline implements the content stages that run before
// sanitization.
//
// This package handles the text and DOM stages of rendering:
//   - Comment stripping and markdown/HTML classification
//   - Markdown to HTML conversion via Goldmark, including spoiler blocks
//   - DOM rewriting: mention, hashtag and URL linking, embed markers,
//     image source normalization and iframe wrapping
//
// Sanitization and embed resolution are handled by the sanitize and embed
// packages. The root renderer package orders the stages.
package pipeline

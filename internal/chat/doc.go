// Package chat renders conversation histories as HTML.
//
// Three presentation modes are supported, each with its own template and
// style block: cai-chat (avatars and names), chat (bubbles) and instruct
// (alternating panels). The most recent turn is rendered first. A turn whose
// user text normalizes to nothing renders only the assistant block.
package chat

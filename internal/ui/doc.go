// Package ui implements the interactive list merge screen using bubbletea's Elm architecture.
//
// The (view) [Model] wraps a [merge.Machine] and renders one of three views:
//  1. Loading : a spinner while the [services.ListSource] runs as a command
//  2. Failed : the load error with a "try again" binding
//  3. Ready : every list as a column, or first | new | second while a merge is pending
//
// All state changes go through the machine; the model only tracks focus, cursors and transient notices.
// Committed merges are handed to an optional [Journal] off the event loop.
//
// Keyboard navigation uses vim-style bindings (h/j/k/l, space, n, <, >, u, esc, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui

// Package models defines the domain entities shared by the merge state machine, its data sources and the journal.
//
// The package contains two categories of types:
//
// 1. Domain values: what the lists endpoint delivers and the state machine manipulates
//   - [Item] : immutable unit with a stable [ItemID]
//   - [List] : a numbered, ordered sequence of items
//   - [RawItem] / [Payload] : the wire shape of the lists endpoint
//
// 2. Persistent Entities: database-backed records
//   - [MergeRecord] : a committed merge with its items and where each came from
//
// Persistent entities implement the [Model] interface; [Repository] describes their storage.
package models

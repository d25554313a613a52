package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/listmerge/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgListsLoaded MsgKind = iota
	MsgMergeRecorded
)

type listsLoaded struct {
	lists []models.List
	err   error
}

type mergeRecorded struct {
	list     int
	sequence int
	err      error
}

// listsLoadedMsg is the constructor for [MsgListsLoaded]
func listsLoadedMsg(lists []models.List, err error) Msg {
	return Msg{kind: MsgListsLoaded, data: listsLoaded{lists, err}}
}

// mergeRecordedMsg is the constructor for [MsgMergeRecorded]
func mergeRecordedMsg(list, sequence int, err error) Msg {
	return Msg{kind: MsgMergeRecorded, data: mergeRecorded{list, sequence, err}}
}

package tui

type state int

const (
	menuState state = iota
	errorState
)

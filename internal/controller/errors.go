package controller

import "errors"

var (
	ErrUnknownView     = errors.New("unknown view")
	ErrNotSignedIn     = errors.New("not signed in")
	ErrNoProfile       = errors.New("profile is not resolved yet")
	ErrNotAdmin        = errors.New("only admins manage security updates")
	ErrChatUnavailable = errors.New("chat is available to users only")
	ErrChatBusy        = errors.New("a chat reply is still pending")
	ErrEmptyMessage    = errors.New("message is empty")
)

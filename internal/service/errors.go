package service

import "errors"

var (
	// ErrChatIdRequired marks an artifact created without an owning chat.
	// This is a programming error upstream, surfaced hard, never recovered.
	ErrChatIdRequired = errors.New("artifact requires a chat id")

	// ErrInvalidArtifactType marks a type outside the fixed enumeration.
	ErrInvalidArtifactType = errors.New("invalid artifact type")

	// ErrLastChat guards the invariant that at least one chat always exists.
	ErrLastChat = errors.New("the last remaining chat cannot be deleted")

	// ErrChatNotFound and ErrArtifactNotFound are lookup misses.
	ErrChatNotFound     = errors.New("chat not found")
	ErrArtifactNotFound = errors.New("artifact not found")

	// ErrInvalidRole rejects message roles outside user/assistant.
	ErrInvalidRole = errors.New("invalid message role")

	// ErrRemoteNotConfigured is the typed state of an absent remote
	// collaborator: callers branch on it instead of silently no-opping.
	ErrRemoteNotConfigured = errors.New("remote backend not configured")

	// ErrNoSession means no user session has been initialized yet.
	ErrNoSession = errors.New("no active session")
)

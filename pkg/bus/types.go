// NovaCal - Personal calendar assistant
// License: MIT
//
// Copyright (c) 2026 NovaCal contributors

package bus

// InboundMessage is one user utterance or command arriving from a transport.
type InboundMessage struct {
	Channel     string // transport name ("telegram", "discord", "cli")
	SenderID    string // stable chat identity, also the session key
	DisplayName string // sender's human-readable name, for denial alerts
	ChatID      string // where replies go
	Content     string
}

// OutboundMessage is one reply unit handed to a transport. Transports apply
// their own size limits when sending.
type OutboundMessage struct {
	Channel string
	ChatID  string
	Content string
}

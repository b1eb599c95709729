package event

import (
	"time"

	"familytree/internal/domain/command"
	"familytree/internal/render"
)

// TreeEvent announces that a command changed the tree.
type TreeEvent struct {
	SessionID string          `json:"session_id"`
	CommandID string          `json:"command_id"`
	Command   command.Command `json:"command"`
	Size      int             `json:"size"`
	Tree      *render.View    `json:"tree"`
	At        time.Time       `json:"at"`
}

// JournalEntry is the audit record of one executed command.
type JournalEntry struct {
	ID        string          `json:"id" bson:"_id"`
	SessionID string          `json:"session_id" bson:"session_id"`
	Line      string          `json:"line" bson:"line"`
	Command   command.Command `json:"command" bson:"command"`
	Applied   bool            `json:"applied" bson:"applied"`
	Status    string          `json:"status,omitempty" bson:"status,omitempty"`
	Names     []string        `json:"names,omitempty" bson:"names,omitempty"`
	At        time.Time       `json:"at" bson:"at"`
}

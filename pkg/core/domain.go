// Package core holds the persistence bridge and the types it shares with its adapters.
package core

import "fmt"

// DefaultFileName is the name of the document file inside the data directory.
const DefaultFileName = "gestor-classes-data.json"

// Placeholder is persisted when there is nothing better to write.
const Placeholder = "{}"

// Info describes the document file as seen by the UI layer.
type Info struct {
	Name   string `json:"name" yaml:"name"`
	Exists bool   `json:"exists" yaml:"exists"`
	Path   string `json:"path" yaml:"path"`
}

// EventType represents the type of change observed on the document file.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents an external change to the document file.
type Event struct {
	Type      EventType `json:"type"`
	Path      string    `json:"path"`
	Timestamp int64     `json:"timestamp"` // Unix timestamp
}

func (e Event) String() string {
	return fmt.Sprintf("%s %s", e.Type, e.Path)
}

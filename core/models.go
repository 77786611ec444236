package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// SearchResult is a single hit reported by a search strategy.
//
// Cursor is a byte offset into the original document and is stable across
// strategies: the same physical location always yields the same cursor, so a
// result from one search can be expanded later with Session.ContextAt.
type SearchResult struct {
	Score           float64
	Cursor          int
	MatchedKeywords []string
	Snippet         string
}

// TaskRecord is a stored benchmark task: a question over one long context
// document, with optional multiple-choice answers.
type TaskRecord struct {
	Id         ID
	TaskID     string // External identifier from the source dataset
	Domain     string
	SubDomain  string
	Difficulty string
	Length     string
	Question   string
	Context    string // The full document text searched by sessions
	Choices    []string
	InsertedAt time.Time // When the record was inserted into the database
	UpdatedAt  time.Time // When the record was last updated
}

// TaskRecordID returns the content-based ID for an external task identifier.
// All lookups and imports key tasks this way, so re-importing the same task
// overwrites rather than duplicates.
func TaskRecordID(taskID string) ID {
	return IDFromContent(taskID)
}

// Answer is a stored prediction for a task. A task may accumulate several
// answers over time; they are kept in insertion order.
type Answer struct {
	Id         ID
	TaskID     string
	Predicted  string
	Choices    []string
	InsertedAt time.Time
	UpdatedAt  time.Time
}

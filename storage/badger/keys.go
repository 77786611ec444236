package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/poiesic/scour/core"
)

// Key prefixes for different data types
const (
	taskRecordPrefix       = "tskrec"
	taskRecordDomainPrefix = "tskdom"
	answerRecordPrefix     = "ansrec"
	answerTaskPrefix       = "anstsk"
	answerIDSeq            = "ansrecseq"
)

// makeTaskRecordKey generates a key for a task record by ID.
func makeTaskRecordKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", taskRecordPrefix, id))
}

// makeTaskDomainKey generates a composite key for the domain index.
// Format: prefix:domain:id
func makeTaskDomainKey(domain string, id core.ID) []byte {
	prefix := taskRecordDomainPrefix + ":" + domain + ":"
	prefixBytes := []byte(prefix)
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialTaskDomainKey generates a partial key covering one domain.
// Format: prefix:domain:
func makePartialTaskDomainKey(domain string) []byte {
	return []byte(taskRecordDomainPrefix + ":" + domain + ":")
}

// makeAnswerKey generates a key for an answer by ID.
func makeAnswerKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", answerRecordPrefix, id))
}

// makeAnswerTaskKey generates a composite key for the per-task answer index.
// Format: prefix:taskRecordID:answerID
func makeAnswerTaskKey(taskRecordID, answerID core.ID) []byte {
	prefix := answerTaskPrefix + ":"
	prefixBytes := []byte(prefix)
	buf := make([]byte, len(prefixBytes)+16)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(taskRecordID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(answerID))
	return buf
}

// makePartialAnswerTaskKey generates a partial key for one task's answers.
// Format: prefix:taskRecordID
func makePartialAnswerTaskKey(taskRecordID core.ID) []byte {
	prefix := answerTaskPrefix + ":"
	prefixBytes := []byte(prefix)
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(taskRecordID))
	return buf
}

// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"fmt"

	"github.com/poiesic/scour/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return id, nil
}

// MarshalTaskRecord serializes a TaskRecord to bytes.
func MarshalTaskRecord(record *core.TaskRecord) []byte {
	buf := make([]byte, core.TaskRecordMUS.Size(*record))
	core.TaskRecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalTaskRecord deserializes a TaskRecord from bytes.
func UnmarshalTaskRecord(data []byte) (*core.TaskRecord, error) {
	record, _, err := core.TaskRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &record, nil
}

// MarshalAnswer serializes an Answer to bytes.
func MarshalAnswer(answer *core.Answer) []byte {
	buf := make([]byte, core.AnswerMUS.Size(*answer))
	core.AnswerMUS.Marshal(*answer, buf)
	return buf
}

// UnmarshalAnswer deserializes an Answer from bytes.
func UnmarshalAnswer(data []byte) (*core.Answer, error) {
	answer, _, err := core.AnswerMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &answer, nil
}

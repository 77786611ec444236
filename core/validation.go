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


package core

import "fmt"

// ValidateTaskRecord validates a TaskRecord according to domain rules.
//
// Validation rules:
//   - TaskID must not be empty
//   - Question must not be empty
//
// NOT validated:
//   - Context (an empty document is legal and searches over it return nothing)
//   - Choices (free-form tasks carry none)
//   - ID (derived from TaskID at write time)
func ValidateTaskRecord(record *TaskRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidTaskRecord)
	}

	if record.TaskID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTaskRecord, ErrEmptyTaskID)
	}

	if record.Question == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTaskRecord, ErrEmptyQuestion)
	}

	return nil
}

// ValidateAnswer validates an Answer according to domain rules.
//
// Validation rules:
//   - TaskID must not be empty
//   - Predicted must not be empty
//
// NOT validated:
//   - Choices (copied from the task for convenience, may be empty)
//   - ID (0 is valid from database sequences)
func ValidateAnswer(answer *Answer) error {
	if answer == nil {
		return fmt.Errorf("%w: answer is nil", ErrInvalidAnswer)
	}

	if answer.TaskID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidAnswer, ErrEmptyTaskID)
	}

	if answer.Predicted == "" {
		return fmt.Errorf("%w: %w", ErrInvalidAnswer, ErrEmptyPredicted)
	}

	return nil
}

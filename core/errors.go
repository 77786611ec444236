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

import "errors"

// Domain validation errors
var (
	// ErrInvalidTaskRecord indicates a TaskRecord failed validation.
	ErrInvalidTaskRecord = errors.New("invalid task record")

	// ErrInvalidAnswer indicates an Answer failed validation.
	ErrInvalidAnswer = errors.New("invalid answer")

	// ErrEmptyTaskID indicates the TaskID field is empty.
	ErrEmptyTaskID = errors.New("task id cannot be empty")

	// ErrEmptyQuestion indicates the Question field is empty.
	ErrEmptyQuestion = errors.New("question cannot be empty")

	// ErrEmptyPredicted indicates the Predicted field is empty.
	ErrEmptyPredicted = errors.New("predicted answer cannot be empty")
)

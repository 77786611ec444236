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


package tools

import "errors"

var (
	// ErrInvalidMaxResults is returned when a configured result cap is not positive.
	ErrInvalidMaxResults = errors.New("max results must be positive")

	// ErrInvalidContextChars is returned when a configured context size is not positive.
	ErrInvalidContextChars = errors.New("context chars must be positive")
)

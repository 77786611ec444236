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


// Package search provides cursor-addressable keyword search over a single
// long document.
//
// An Index is built once from the document text and is immutable afterwards.
// Four strategies search it, all implementing the Algorithm interface:
//   - Relevance: frequency-weighted passage scoring
//   - Proximity: strict boolean-AND matching within a character window
//   - Approximate: substring containment in either direction
//   - Phrase: literal phrase occurrences
//
// Every result carries a cursor, a byte offset into the original document
// that is stable across strategies. Context around any cursor can be
// expanded later without re-searching. Strategies are composed with
// Fallback, which runs the next algorithm only when the previous one
// found nothing.
package search

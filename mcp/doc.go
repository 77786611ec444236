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


// Package mcp exposes a search session as an MCP tool server.
//
// The server speaks JSON-RPC 2.0 over newline-delimited stdio or HTTP and
// offers the four session tools: search_context, search_exact_phrase,
// search_boolean_and, and get_context_at_cursor. Tool results are MCP text
// content payloads produced by the tools package formatter; "nothing found"
// is a successful empty-result payload, never a JSON-RPC error.
package mcp

// Package corpus loads benchmark task files into the task store and warms
// up search sessions for stored tasks.
//
// The Importer type walks a directory of task JSON files and loads them into
// a TaskRepository, parsing files concurrently with a bounded worker group.
// The Builder type constructs ready-to-search sessions for many stored tasks
// on a shared worker pool. Per-task failures are logged and collected rather
// than aborting the batch.
package corpus

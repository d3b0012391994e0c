/*
Package ports defines the driven ports (interfaces) of the tour.

These interfaces decouple the playback core from where scripts come from and
from how notifications reach the reader.

# Key Interfaces

  - ScriptLoader: resolves Script definitions by ID (embedded content, Loam, memory).
  - Watchable: optional capability of loaders backed by files that can change.
  - Notifier: shows a short transient message ("Copied!") to the reader.
*/
package ports

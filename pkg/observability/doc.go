/*
Package observability exposes Prometheus metrics for the served tour.

Metrics live on their own registry so tests and embedders can create as many
sets as they like. Playback metrics are fed through domain.PlaybackHooks and
are therefore recorded on the widget actor goroutine.
*/
package observability

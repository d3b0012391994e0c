package ports

// Notifier shows short transient messages to the reader.
// An implementation is created once per page root and passed down explicitly.
type Notifier interface {
	Notify(message string)
}

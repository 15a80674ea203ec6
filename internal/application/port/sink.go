package port

type Sink interface {
	// WriteLine prints one line followed by a newline.
	WriteLine(line string) error
	// Clear wipes the screen (no-op for non-terminal sinks).
	Clear() error
}

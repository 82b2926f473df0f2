package interaction

// LabelSource asks the user for the text of a leader. ok is false when the
// user cancelled.
type LabelSource interface {
	Prompt() (text string, ok bool)
}

// LabelFunc adapts a function to LabelSource
type LabelFunc func() (string, bool)

func (f LabelFunc) Prompt() (string, bool) {
	return f()
}

// StaticLabel answers every prompt with the same text
type StaticLabel string

func (s StaticLabel) Prompt() (string, bool) {
	return string(s), true
}

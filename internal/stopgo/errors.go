package stopgo

import "fmt"

// ConfigError indicates the supplied Config cannot be used to classify any
// trace: no scoring method is enabled, or a window size is unusable.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("stopgo: invalid configuration: %s", e.Reason)
}

// InputTooShortError indicates the trace, after de-duplication, has fewer
// samples than the largest enabled window requires.
type InputTooShortError struct {
	Got  int
	Need int
}

func (e *InputTooShortError) Error() string {
	return fmt.Sprintf("stopgo: classification requires at least %d unique samples, got %d", e.Need, e.Got)
}

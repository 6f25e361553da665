package animator

// Mode selects how a requested frame is displayed.
type Mode int

const (
	// ModeLive redraws each requested frame on demand via the frame callback.
	ModeLive Mode = iota
	// ModeCached loads a previously rasterized image per frame from disk.
	ModeCached
)

func (m Mode) String() string {
	switch m {
	case ModeLive:
		return "Live"
	case ModeCached:
		return "Cached"
	default:
		return "Unknown"
	}
}

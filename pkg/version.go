package tfingest

var (
	// Version of tfingest.
	Version = "v0.1.0"
	// Build timestamp, set by the linker.
	Build = "n/a"
)

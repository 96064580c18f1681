package ir

const (
	// SchemaVersion is the version of the record layout written to stores
	// and golden files.
	SchemaVersion = "1"

	// EngineVersion is the lazyreals engine version.
	EngineVersion = "0.1.0"
)

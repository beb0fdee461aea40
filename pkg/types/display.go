package types

// TargetInfo describes one configured target for display purposes
type TargetInfo struct {
	// Name is the target identifier (e.g. "cursor")
	Name string `json:"name" yaml:"name"`

	// Dest is the resolved destination path
	Dest string `json:"dest" yaml:"dest"`

	// Exists reports whether the destination file currently exists
	Exists bool `json:"exists" yaml:"exists"`
}

// TargetOutput describes the composed result for one target
type TargetOutput struct {
	// Name is the target identifier
	Name string `json:"name" yaml:"name"`

	// Dest is the resolved destination path
	Dest string `json:"dest" yaml:"dest"`

	// Content is the final composed text
	Content string `json:"content" yaml:"content"`

	// Written reports whether the destination was written this run
	Written bool `json:"written" yaml:"written"`
}

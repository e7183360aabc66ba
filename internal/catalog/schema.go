package catalog

// Document is the on-disk shape of one provider's catalog.
type Document struct {
	// Provider the document describes; optional, checked when present.
	Provider string `yaml:"provider,omitempty"`

	// Modules maps a category to the toolkit module path of its classes.
	Modules map[string]string `yaml:"modules"`

	// Nodes maps a node_id to its declared type.
	Nodes map[string]NodeSpec `yaml:"nodes"`
}

// NodeSpec is a single node declaration inside a Document.
type NodeSpec struct {
	Category    string `yaml:"category"`
	ClassName   string `yaml:"class_name"`
	Description string `yaml:"description,omitempty"`
}

// Entry is a validated catalog entry.
type Entry struct {
	NodeID      string `json:"node_id" yaml:"node_id"`
	Category    string `json:"category" yaml:"category"`
	ClassName   string `json:"class_name" yaml:"class_name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

package models

// RenderedOutput is the displayable result of running one layer.
type RenderedOutput struct {
	Title   string  `json:"title"`
	Entries []Entry `json:"entries"`
}

// Entry is one labeled field of a RenderedOutput. MetadataKey links the entry
// to its annotation; empty means the entry carries no annotation.
type Entry struct {
	Label       string `json:"label"`
	Value       string `json:"value"`
	MetadataKey string `json:"metadataKey,omitempty"`
}

// StepFrame is what the client receives after every simulation transition.
type StepFrame struct {
	Step        int            `json:"step"`
	Total       int            `json:"total"`
	Layer       string         `json:"layer"`
	Description string         `json:"description"`
	Output      RenderedOutput `json:"output"`
	CanPrev     bool           `json:"canPrev"`
	CanNext     bool           `json:"canNext"`
	WireDump    string         `json:"wireDump,omitempty"`
}

// FrameInfo is the decoded view of the exported wire frame.
type FrameInfo struct {
	Length  int           `json:"length"`
	Layers  []LayerDetail `json:"layers"`
	HexDump string        `json:"hexDump"`
	RawHex  string        `json:"rawHex"`
}

// LayerDetail represents one protocol layer in the decoded frame.
type LayerDetail struct {
	Name   string       `json:"name"`
	Fields []LayerField `json:"fields"`
}

// LayerField represents a single field within a protocol layer.
type LayerField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

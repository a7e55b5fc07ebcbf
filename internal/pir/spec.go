package pir

// PromptSpec is the flattened authoring view of a single-predict module:
// its inputs and sections plus exactly one system and one user template,
// each a direct string rather than an emit sequence. Optimizer backends
// operate on this shape; lowering turns it into a full Module and lifting
// recovers it.
type PromptSpec struct {
	Name    string
	Version string

	Inputs   []Input
	Sections []Section

	System string
	User   string

	Engine string
	Strict bool
}

// Outputs assembles the response contract from the sections' output
// descriptors, in section declaration order. It is a derived artifact:
// nothing stores it, so it can never drift from the sections.
func (s *PromptSpec) Outputs() []OutputField {
	var fields []OutputField
	for _, section := range s.Sections {
		if section.Output != nil {
			fields = append(fields, *section.Output)
		}
	}
	return fields
}

// Input returns the declared input named name, or nil.
func (s *PromptSpec) Input(name string) *Input {
	for i := range s.Inputs {
		if s.Inputs[i].Name == name {
			return &s.Inputs[i]
		}
	}
	return nil
}

// Section returns the declared section named name, or nil.
func (s *PromptSpec) Section(name string) *Section {
	for i := range s.Sections {
		if s.Sections[i].Name == name {
			return &s.Sections[i]
		}
	}
	return nil
}

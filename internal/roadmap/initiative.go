package roadmap

// UntitledLabel is shown wherever an initiative has no title.
const UntitledLabel = "Untitled"

// Initiative is one roadmap work item.
type Initiative struct {
	ID           string  `yaml:"-"`
	Title        string  `yaml:"title"`
	Description  string  `yaml:"description,omitempty"`
	Quarter      Quarter `yaml:"quarter"`
	Owner        string  `yaml:"owner,omitempty"`
	Status       Status  `yaml:"status"`
	Dependencies string  `yaml:"dependencies,omitempty"`
	Gaps         string  `yaml:"gaps,omitempty"`
}

// DisplayTitle returns the title, or UntitledLabel when it is empty.
func (i Initiative) DisplayTitle() string {
	if i.Title == "" {
		return UntitledLabel
	}
	return i.Title
}

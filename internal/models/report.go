package models

// Descriptor is one "<line>:<message>" entry taken from a model response.
type Descriptor struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// FileReport is the outcome of a compliance review of one file. Err is set
// when the file could not be read, decoded or reviewed; Annotated and
// Descriptors are only populated on success.
type FileReport struct {
	Path        string       `json:"path"`
	Response    string       `json:"response,omitempty"`
	Annotated   string       `json:"annotated,omitempty"`
	Descriptors []Descriptor `json:"descriptors,omitempty"`
	Err         error        `json:"-"`
}

// OK reports whether the file was reviewed successfully.
func (r FileReport) OK() bool {
	return r.Err == nil
}

// ErrorText is the failure message, or "" for a successful report.
func (r FileReport) ErrorText() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

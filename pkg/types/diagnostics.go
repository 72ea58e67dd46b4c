package types

import "fmt"

// Diagnostic records a failure that truncated the report. Diagnostics go to
// a side channel (the logger and the walker's list), never into the report text.
type Diagnostic struct {
	Path    string  `json:"path" yaml:"path"`       // display path of the storage being visited
	Op      string  `json:"op" yaml:"op"`           // operation that failed, e.g. "enumerate property sets"
	Code    HRESULT `json:"code" yaml:"code"`       // platform status code
	Message string  `json:"message" yaml:"message"` // human-readable description
	Err     error   `json:"-" yaml:"-"`
}

// NewDiagnostic builds a diagnostic for err at path.
func NewDiagnostic(path, op string, err error) Diagnostic {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return Diagnostic{
		Path:    path,
		Op:      op,
		Code:    StatusCode(err),
		Message: msg,
		Err:     err,
	}
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s failed: %s (%s)", d.Path, d.Op, d.Message, d.Code.Hex())
}

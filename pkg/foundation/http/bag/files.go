package bag

import "mime/multipart"

// Files holds uploaded file descriptors. The descriptors are opaque to the request; the
// net/http adapter stores []*multipart.FileHeader values.
type Files struct {
	*Parameters
}

// NewFiles wraps the upload descriptors in m.
func NewFiles(m map[string]any) *Files {
	return &Files{Parameters: NewParameters(m)}
}

// File returns the first multipart header stored under key, or nil.
func (f *Files) File(key string) *multipart.FileHeader {
	switch v := f.Get(key, nil).(type) {
	case *multipart.FileHeader:
		return v
	case []*multipart.FileHeader:
		if len(v) > 0 {
			return v[0]
		}
	}

	return nil
}

// Clone returns an independent copy of the container.
func (f *Files) Clone() *Files {
	return &Files{Parameters: f.Parameters.Clone()}
}

package core

// Result is the outcome of a write-type operation as reported to the UI layer.
type Result struct {
	Success bool      `json:"success"`
	Name    string    `json:"name"`
	Kind    ErrorKind `json:"kind,omitempty"`
	Error   string    `json:"error,omitempty"`
}

// ResultOf builds the Result for an operation on the named document that returned err.
func ResultOf(name string, err error) Result {
	if err == nil {
		return Result{Success: true, Name: name}
	}
	return Result{
		Success: false,
		Name:    name,
		Kind:    KindOf(err),
		Error:   err.Error(),
	}
}

package parameter

import "fmt"

// InvalidParamError reports an unknown parameter name or a value outside its range or value set
type InvalidParamError struct {
	Name   string
	Value  string
	Reason string
}

func (e *InvalidParamError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%q: %s", e.Name, e.Value, e.Reason)
}

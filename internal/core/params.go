package core

import "strconv"

// Parameter describes a single configured value exposed for display.
type Parameter struct {
	Key   string
	Label string
	Value string
}

// ParameterGroup clusters related parameters for presentation purposes.
type ParameterGroup struct {
	Name   string
	Params []Parameter
}

// ParameterSnapshot captures the current set of values exposed by a simulation.
type ParameterSnapshot struct {
	Groups []ParameterGroup
}

// ParameterProvider is implemented by anything that can describe its settings.
type ParameterProvider interface {
	Parameters() ParameterSnapshot
}

// IntParam formats an integer parameter.
func IntParam(key, label string, v int) Parameter {
	return Parameter{Key: key, Label: label, Value: strconv.Itoa(v)}
}

// FloatParam formats a float parameter with the shortest exact representation.
func FloatParam(key, label string, v float64) Parameter {
	return Parameter{Key: key, Label: label, Value: strconv.FormatFloat(v, 'g', -1, 64)}
}

// StringParam wraps a plain string value.
func StringParam(key, label, v string) Parameter {
	return Parameter{Key: key, Label: label, Value: v}
}

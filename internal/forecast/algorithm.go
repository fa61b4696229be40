// internal/forecast/algorithm.go
package forecast

import "fmt"

// Algorithm is the closed set of forecasting methods the orchestrator can
// dispatch to. Keeping it an enum (rather than free-form strings) makes the
// dispatch switch exhaustive at review time. Hybrid is the zero value so an
// unset request falls through to algorithm selection.
type Algorithm int

const (
	AlgorithmHybrid Algorithm = iota
	AlgorithmSMA
	AlgorithmExponential
	AlgorithmLinear
	AlgorithmSeasonal
)

var algorithmNames = map[Algorithm]string{
	AlgorithmSMA:         "sma",
	AlgorithmExponential: "exponential",
	AlgorithmLinear:      "linear",
	AlgorithmSeasonal:    "seasonal",
	AlgorithmHybrid:      "hybrid",
}

func (a Algorithm) String() string {
	if name, ok := algorithmNames[a]; ok {
		return name
	}
	return "unknown"
}

// ParseAlgorithm maps an external algorithm name to the enum. An empty name
// selects the hybrid default.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch name {
	case "", "hybrid":
		return AlgorithmHybrid, nil
	case "sma":
		return AlgorithmSMA, nil
	case "exponential":
		return AlgorithmExponential, nil
	case "linear":
		return AlgorithmLinear, nil
	case "seasonal":
		return AlgorithmSeasonal, nil
	default:
		return AlgorithmHybrid, fmt.Errorf("unknown forecast algorithm: %q", name)
	}
}

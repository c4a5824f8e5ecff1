package graphseg

// ThresholdFunc maps the size of a freshly merged component and the
// granularity constant c to the tolerance added to the merging edge weight.
type ThresholdFunc func(size int, c float64) float64

// InitialThreshold is the threshold of every singleton component.
func InitialThreshold(c float64) float64 { return c }

// SizeThreshold is the default policy c/size: larger components tolerate
// less additional variation beyond their heaviest internal edge.
func SizeThreshold(size int, c float64) float64 {
	return c / float64(size)
}

package discadelta

// Length is a declared main- or cross-axis length. It is either a literal
// value ([Flat]) or a request to compute the length from the node's
// subtree ([Auto]).
type Length struct {
	auto     bool
	fallback float64
}

// Flat returns a literal declared length. Negative values are normalized
// to zero during [Create].
func Flat(v float64) Length {
	return Length{auto: false, fallback: v}
}

// Auto returns a length that is computed from the subtree's accumulated
// main-axis base. fallback is used only when the node is a leaf with no
// children.
func Auto(fallback float64) Length {
	return Length{auto: true, fallback: fallback}
}

// IsAuto reports whether the length must be resolved from the subtree.
func (l Length) IsAuto() bool { return l.auto }

// Value returns the literal value for a Flat length, or the fallback for
// an Auto length. Callers resolving Auto lengths against a populated
// subtree should use the node's accumulated base instead.
func (l Length) Value() float64 { return l.fallback }

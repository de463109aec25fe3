package discadelta

// Direction selects which axis is the main axis for a parent's children.
type Direction int

const (
	// Row lays children out along the width; height is the cross axis.
	Row Direction = iota
	// Column lays children out along the height; width is the cross axis.
	Column
)

// axis identifies one of the two absolute dimensions a 2D tree resolves
// against. Direction maps to an axis (Row -> width, Column -> height);
// every node's Base/Min/Max describe its size along its parent's main
// axis, and CrossBase/CrossMin/CrossMax along its parent's cross axis,
// regardless of which absolute axis that happens to be.
type axis int

const (
	width axis = iota
	height
)

func mainAxisOf(d Direction) axis {
	if d == Column {
		return height
	}
	return width
}

func crossAxisOf(d Direction) axis {
	if d == Column {
		return width
	}
	return height
}

// Config is the immutable per-node declaration a caller passes to [Create].
// Config fields other than Order are treated as immutable once a node is
// linked into a tree; changing them requires an Unlink/Link round trip so
// that cached ancestor aggregates stay consistent.
type Config struct {
	// Name is an opaque identifier, unique within one solve. It is never
	// interpreted by the solver itself.
	Name string

	// Base is the declared length on the main axis.
	Base Length
	// Min and Max are hard clamps on the main-axis distance. 0 <= Min <=
	// Max; Max may be +Inf.
	Min, Max float64

	// FlexCompress controls how much of Base can be given up when the
	// parent's target is smaller than the sum of children's bases. Zero
	// means "do not compress below base".
	FlexCompress float64
	// FlexExpand controls how this node shares surplus with siblings when
	// the parent's target exceeds the sum of children's bases. Zero means
	// "do not expand above base".
	FlexExpand float64

	// Order determines placement along the main axis; lower values are
	// placed first. Order has no effect on sizing and, unlike other Config
	// fields, may be mutated on a linked node via [Node.SetOrder].
	Order int

	// Direction selects the main axis for this node's own children (2D
	// layouts only). It is meaningless for a leaf.
	Direction Direction

	// CrossBase, CrossMin, CrossMax declare the same semantics as
	// Base/Min/Max but along the parent's cross axis rather than its main
	// axis (2D layouts only). Like Base/Min/Max, they describe this node's
	// size from its parent's point of view, not its own Direction.
	CrossBase Length
	CrossMin  float64
	CrossMax  float64
}

// Content holds the mutable output of a solve. Solver passes never mutate
// Config; they only rewrite Content.
type Content struct {
	// Base is the resolved literal main-axis base, after Auto resolution.
	Base float64
	// ExpandDelta is the signed contribution the expansion pass added to
	// Base (zero after a compression pass or when the node was fixed at
	// its declared base).
	ExpandDelta float64
	// Distance is the resolved main-axis size: the length the parent's
	// distribution assigned (TargetMain for the root), clamped to
	// [Min, Max], then adjusted by rounding when the solve rounds. When it
	// exceeds Base it equals Base + ExpandDelta.
	Distance float64
	// Offset is the main-axis position within the parent, assigned by
	// [Place].
	Offset float64

	// Width, Height, X, Y are populated by two-dimensional solves; Width
	// and Height mirror Distance/cross-size depending on Direction, and X,
	// Y mirror Offset/cross-offset.
	Width, Height float64
	X, Y          float64
}

package discadelta

import (
	"encoding/json"
	"fmt"
	"math"
)

// Snapshot is a serializable record of a solved (or unsolved) node tree. It
// exists for collaborators outside the core engine — an HTTP API returning
// a solved layout, a store persisting one — that need a wire format; the
// solver itself never reads or writes one.
type Snapshot struct {
	Name      string  `json:"name" bson:"name"`
	Direction string  `json:"direction,omitempty" bson:"direction,omitempty"`
	Order     int     `json:"order,omitempty" bson:"order,omitempty"`
	Min       float64 `json:"min,omitempty" bson:"min,omitempty"`
	// Max is left zero (and so omitted) when the node's Max is unbounded,
	// since JSON cannot encode +Inf.
	Max float64 `json:"max,omitempty" bson:"max,omitempty"`

	Distance float64 `json:"distance" bson:"distance"`
	Offset   float64 `json:"offset" bson:"offset"`
	Width    float64 `json:"width,omitempty" bson:"width,omitempty"`
	Height   float64 `json:"height,omitempty" bson:"height,omitempty"`
	X        float64 `json:"x,omitempty" bson:"x,omitempty"`
	Y        float64 `json:"y,omitempty" bson:"y,omitempty"`

	Children []Snapshot `json:"children,omitempty" bson:"children,omitempty"`
}

// Snapshot walks n's subtree and captures its current Content, without
// mutating anything. Call it after [Solve] (or [Place]) to capture a
// solved result, or before to capture the tree's declared shape.
func (n *Node) Snapshot() Snapshot {
	content := n.Content()
	s := Snapshot{
		Name:     n.Name(),
		Order:    n.config.Order,
		Min:      n.config.Min,
		Distance: content.Distance,
		Offset:   content.Offset,
		Width:    content.Width,
		Height:   content.Height,
		X:        content.X,
		Y:        content.Y,
	}
	if !math.IsInf(n.config.Max, 1) {
		s.Max = n.config.Max
	}
	if n.config.Direction == Column {
		s.Direction = "column"
	}
	if len(n.children) > 0 {
		s.Children = make([]Snapshot, len(n.children))
		for i, c := range n.children {
			s.Children[i] = c.Snapshot()
		}
	}
	return s
}

// MarshalSnapshot serializes a Snapshot to pretty-printed JSON, mirroring
// the indentation convention collaborators expect from exported layout
// data.
func MarshalSnapshot(s Snapshot) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// UnmarshalSnapshot parses JSON bytes produced by [MarshalSnapshot] back
// into a Snapshot tree.
func UnmarshalSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return s, nil
}

// Rebuild reconstructs a detached [Node] tree from the snapshot's declared
// shape (Name, Min, Max, Order, Direction) for re-solving — e.g. after
// loading a tree definition from [pkg/store]. It does not restore Base,
// FlexCompress, or FlexExpand, since a Snapshot does not carry them; callers
// that need to re-solve with the original flex behavior must keep the
// [Config] values alongside the snapshot. A zero Max rebuilds as unbounded.
func (s Snapshot) Rebuild() *Node {
	direction := Row
	if s.Direction == "column" {
		direction = Column
	}
	max := s.Max
	if max == 0 {
		max = math.Inf(1)
	}
	n := Create(Config{
		Name:      s.Name,
		Order:     s.Order,
		Min:       s.Min,
		Max:       max,
		Direction: direction,
	})
	for _, childSnapshot := range s.Children {
		_ = Link(childSnapshot.Rebuild(), n)
	}
	return n
}

// Package store persists named node-tree definitions and their
// last-solved results, giving internal/api a way to reload trees across
// restarts. It exposes a narrow interface with an in-memory implementation
// for tests and a production backend (here, MongoDB) for the server.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/Putcho1994/Discadelta/pkg/discadelta"
)

// ErrNotFound is returned when a requested tree does not exist.
var ErrNotFound = errors.New("not found")

// TreeDefinition is a serializable declaration of a node tree, carrying
// everything [discadelta.Config] needs to reconstruct it — unlike
// [discadelta.Snapshot], which carries a solve's resolved output and only
// part of the declaration (no Base or flex factors).
type TreeDefinition struct {
	Name string `json:"name" bson:"name"`

	BaseAuto     bool    `json:"base_auto,omitempty" bson:"base_auto,omitempty"`
	Base         float64 `json:"base,omitempty" bson:"base,omitempty"`
	Min          float64 `json:"min,omitempty" bson:"min,omitempty"`
	Max          float64 `json:"max,omitempty" bson:"max,omitempty"`
	FlexCompress float64 `json:"flex_compress,omitempty" bson:"flex_compress,omitempty"`
	FlexExpand   float64 `json:"flex_expand,omitempty" bson:"flex_expand,omitempty"`
	Order        int     `json:"order,omitempty" bson:"order,omitempty"`

	Direction     string  `json:"direction,omitempty" bson:"direction,omitempty"`
	CrossBaseAuto bool    `json:"cross_base_auto,omitempty" bson:"cross_base_auto,omitempty"`
	CrossBase     float64 `json:"cross_base,omitempty" bson:"cross_base,omitempty"`
	CrossMin      float64 `json:"cross_min,omitempty" bson:"cross_min,omitempty"`
	CrossMax      float64 `json:"cross_max,omitempty" bson:"cross_max,omitempty"`

	Children []TreeDefinition `json:"children,omitempty" bson:"children,omitempty"`
}

// FromNode captures n's subtree declaration (not its solved output) as a
// TreeDefinition, for persisting a tree that hasn't necessarily been
// solved yet.
func FromNode(n *discadelta.Node) TreeDefinition {
	cfg := n.Config()
	direction := ""
	if cfg.Direction == discadelta.Column {
		direction = "column"
	}

	def := TreeDefinition{
		Name:          n.Name(),
		BaseAuto:      cfg.Base.IsAuto(),
		Base:          cfg.Base.Value(),
		Min:           cfg.Min,
		Max:           cfg.Max,
		FlexCompress:  cfg.FlexCompress,
		FlexExpand:    cfg.FlexExpand,
		Order:         cfg.Order,
		Direction:     direction,
		CrossBaseAuto: cfg.CrossBase.IsAuto(),
		CrossBase:     cfg.CrossBase.Value(),
		CrossMin:      cfg.CrossMin,
		CrossMax:      cfg.CrossMax,
	}
	children := n.Children()
	if len(children) > 0 {
		def.Children = make([]TreeDefinition, len(children))
		for i, c := range children {
			def.Children[i] = FromNode(c)
		}
	}
	return def
}

// Build reconstructs a detached [discadelta.Node] tree from the
// definition, ready to [discadelta.Solve].
func (d TreeDefinition) Build() *discadelta.Node {
	base := discadelta.Flat(d.Base)
	if d.BaseAuto {
		base = discadelta.Auto(d.Base)
	}
	crossBase := discadelta.Flat(d.CrossBase)
	if d.CrossBaseAuto {
		crossBase = discadelta.Auto(d.CrossBase)
	}
	direction := discadelta.Row
	if d.Direction == "column" {
		direction = discadelta.Column
	}

	n := discadelta.Create(discadelta.Config{
		Name:         d.Name,
		Base:         base,
		Min:          d.Min,
		Max:          d.Max,
		FlexCompress: d.FlexCompress,
		FlexExpand:   d.FlexExpand,
		Order:        d.Order,
		Direction:    direction,
		CrossBase:    crossBase,
		CrossMin:     d.CrossMin,
		CrossMax:     d.CrossMax,
	})
	for _, child := range d.Children {
		_ = discadelta.Link(child.Build(), n)
	}
	return n
}

// Document is the persisted record for one named tree: its declaration
// and, once solved at least once, its last result.
type Document struct {
	Name       string                `json:"name" bson:"_id"`
	Definition TreeDefinition        `json:"definition" bson:"definition"`
	Result     *discadelta.Snapshot  `json:"result,omitempty" bson:"result,omitempty"`
	UpdatedAt  time.Time             `json:"updated_at" bson:"updated_at"`
}

// Store persists tree definitions and their last-solved results, keyed by
// name.
type Store interface {
	// Get retrieves a document by name. Returns [ErrNotFound] if absent.
	Get(ctx context.Context, name string) (Document, error)

	// Put upserts a document.
	Put(ctx context.Context, doc Document) error

	// Delete removes a document. It is not an error to delete a name that
	// does not exist.
	Delete(ctx context.Context, name string) error

	// List returns the names of all stored documents.
	List(ctx context.Context) ([]string, error)

	// Close releases the store's underlying connection, if any.
	Close(ctx context.Context) error
}

// ReadTreeDefinitionFile reads a JSON-encoded [TreeDefinition] from path.
func ReadTreeDefinitionFile(path string) (TreeDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return TreeDefinition{}, fmt.Errorf("read %s: %w", path, err)
	}
	var def TreeDefinition
	if err := json.Unmarshal(data, &def); err != nil {
		return TreeDefinition{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return def, nil
}

// WriteTreeDefinitionFile writes def to path as pretty-printed JSON.
func WriteTreeDefinitionFile(def TreeDefinition, path string) error {
	data, err := json.MarshalIndent(def, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Package ast defines the ESTree-compatible node shapes the parser emits.
// Every node carries a "type" tag, a loc (source label plus 1-based line /
// 0-based column positions), and a range (byte offset pair). The downstream
// code generator consumes these shapes as JSON; field sets are part of the
// wire contract and must not change casually. Nodes are treated as immutable
// once constructed.
package ast

// Node is implemented by every AST node.
type Node interface {
	NodeType() string
	NodeLoc() SourceLocation
	NodeRange() Range
}

// Declaration is a top-level Program body entry.
type Declaration interface {
	Node
	declarationNode()
}

// TypeAnnotation is a translated type-annotation node.
type TypeAnnotation interface {
	Node
	typeAnnotationNode()
}

// ObjectMember is an entry of an ObjectTypeAnnotation's properties list.
type ObjectMember interface {
	Node
	objectMemberNode()
}

// NodeBase carries the three fields common to every node. Embedding it first
// keeps "type" the leading JSON key.
type NodeBase struct {
	Type  string         `json:"type"`
	Loc   SourceLocation `json:"loc"`
	Range Range          `json:"range"`
}

// NodeType returns the ESTree type tag.
func (b NodeBase) NodeType() string { return b.Type }

// NodeLoc returns the node's line/column location.
func (b NodeBase) NodeLoc() SourceLocation { return b.Loc }

// NodeRange returns the node's byte offset range.
func (b NodeBase) NodeRange() Range { return b.Range }

func makeBase(typ string, span Span) NodeBase {
	return NodeBase{Type: typ, Loc: span.Loc, Range: span.Range}
}

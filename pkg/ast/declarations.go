package ast

// Identifier is a name token.
type Identifier struct {
	NodeBase
	Name string `json:"name"`
}

// NewIdentifier builds an Identifier node.
func NewIdentifier(name string, span Span) *Identifier {
	return &Identifier{NodeBase: makeBase("Identifier", span), Name: name}
}

// StringLiteral is a quoted string token. Raw keeps the quotes.
type StringLiteral struct {
	NodeBase
	Value string `json:"value"`
	Raw   string `json:"raw"`
}

// NewStringLiteral builds a StringLiteral node with double-quoted raw text.
func NewStringLiteral(value string, span Span) *StringLiteral {
	return &StringLiteral{NodeBase: makeBase("StringLiteral", span), Value: value, Raw: `"` + value + `"`}
}

// ImportDefaultSpecifier binds the opened module's local name.
type ImportDefaultSpecifier struct {
	NodeBase
	Local *Identifier `json:"local"`
}

// NewImportDefaultSpecifier builds an ImportDefaultSpecifier node.
func NewImportDefaultSpecifier(local *Identifier, span Span) *ImportDefaultSpecifier {
	return &ImportDefaultSpecifier{NodeBase: makeBase("ImportDefaultSpecifier", span), Local: local}
}

// ImportDeclaration is synthesized from an open statement.
type ImportDeclaration struct {
	NodeBase
	Specifiers []*ImportDefaultSpecifier `json:"specifiers"`
	Source     *StringLiteral            `json:"source"`
	ImportKind string                    `json:"importKind"`
}

func (*ImportDeclaration) declarationNode() {}

// NewImportDeclaration builds an ImportDeclaration node.
func NewImportDeclaration(specifiers []*ImportDefaultSpecifier, source *StringLiteral, span Span) *ImportDeclaration {
	if specifiers == nil {
		specifiers = []*ImportDefaultSpecifier{}
	}
	return &ImportDeclaration{
		NodeBase:   makeBase("ImportDeclaration", span),
		Specifiers: specifiers,
		Source:     source,
		ImportKind: "value",
	}
}

// InterfaceExtends is one extends clause entry of an interface.
type InterfaceExtends struct {
	NodeBase
	ID *Identifier `json:"id"`
}

// NewInterfaceExtends builds an InterfaceExtends node.
func NewInterfaceExtends(id *Identifier, span Span) *InterfaceExtends {
	return &InterfaceExtends{NodeBase: makeBase("InterfaceExtends", span), ID: id}
}

// InterfaceDeclaration is synthesized from the spec type definition.
type InterfaceDeclaration struct {
	NodeBase
	ID      *Identifier           `json:"id"`
	Body    *ObjectTypeAnnotation `json:"body"`
	Extends []*InterfaceExtends   `json:"extends"`
}

func (*InterfaceDeclaration) declarationNode() {}

// NewInterfaceDeclaration builds an InterfaceDeclaration node.
func NewInterfaceDeclaration(id *Identifier, body *ObjectTypeAnnotation, extends []*InterfaceExtends, span Span) *InterfaceDeclaration {
	if extends == nil {
		extends = []*InterfaceExtends{}
	}
	return &InterfaceDeclaration{
		NodeBase: makeBase("InterfaceDeclaration", span),
		ID:       id,
		Body:     body,
		Extends:  extends,
	}
}

// TypeAlias is synthesized from a non-spec record type definition.
type TypeAlias struct {
	NodeBase
	ID    *Identifier    `json:"id"`
	Right TypeAnnotation `json:"right"`
}

func (*TypeAlias) declarationNode() {}

// NewTypeAlias builds a TypeAlias node.
func NewTypeAlias(id *Identifier, right TypeAnnotation, span Span) *TypeAlias {
	return &TypeAlias{NodeBase: makeBase("TypeAlias", span), ID: id, Right: right}
}

// MemberExpression is a dotted callee like TurboModuleRegistry.getEnforcing.
type MemberExpression struct {
	NodeBase
	Object   *Identifier `json:"object"`
	Property *Identifier `json:"property"`
}

// NewMemberExpression builds a MemberExpression node.
func NewMemberExpression(object, property *Identifier, span Span) *MemberExpression {
	return &MemberExpression{NodeBase: makeBase("MemberExpression", span), Object: object, Property: property}
}

// CallExpression is the registration call synthesized under a default export.
type CallExpression struct {
	NodeBase
	Callee        Node                        `json:"callee"`
	TypeArguments *TypeParameterInstantiation `json:"typeArguments,omitempty"`
	Arguments     []Node                      `json:"arguments"`
}

// NewCallExpression builds a CallExpression node.
func NewCallExpression(callee Node, typeArguments *TypeParameterInstantiation, arguments []Node, span Span) *CallExpression {
	if arguments == nil {
		arguments = []Node{}
	}
	return &CallExpression{
		NodeBase:      makeBase("CallExpression", span),
		Callee:        callee,
		TypeArguments: typeArguments,
		Arguments:     arguments,
	}
}

// ExportDefaultDeclaration wraps a registration call.
type ExportDefaultDeclaration struct {
	NodeBase
	Declaration Node `json:"declaration"`
}

func (*ExportDefaultDeclaration) declarationNode() {}

// NewExportDefaultDeclaration builds an ExportDefaultDeclaration node.
func NewExportDefaultDeclaration(declaration Node, span Span) *ExportDefaultDeclaration {
	return &ExportDefaultDeclaration{NodeBase: makeBase("ExportDefaultDeclaration", span), Declaration: declaration}
}

package ast

// TypeParameterInstantiation carries the type arguments of a generic
// reference or a registration call.
type TypeParameterInstantiation struct {
	NodeBase
	Params []TypeAnnotation `json:"params"`
}

// NewTypeParameterInstantiation builds a TypeParameterInstantiation node.
func NewTypeParameterInstantiation(params []TypeAnnotation, span Span) *TypeParameterInstantiation {
	if params == nil {
		params = []TypeAnnotation{}
	}
	return &TypeParameterInstantiation{NodeBase: makeBase("TypeParameterInstantiation", span), Params: params}
}

// VoidTypeAnnotation is the unit type and the degradation default.
type VoidTypeAnnotation struct {
	NodeBase
}

func (*VoidTypeAnnotation) typeAnnotationNode() {}

// NewVoidTypeAnnotation builds a VoidTypeAnnotation node.
func NewVoidTypeAnnotation(span Span) *VoidTypeAnnotation {
	return &VoidTypeAnnotation{NodeBase: makeBase("VoidTypeAnnotation", span)}
}

// StringTypeAnnotation is the primitive string type.
type StringTypeAnnotation struct {
	NodeBase
}

func (*StringTypeAnnotation) typeAnnotationNode() {}

// NewStringTypeAnnotation builds a StringTypeAnnotation node.
func NewStringTypeAnnotation(span Span) *StringTypeAnnotation {
	return &StringTypeAnnotation{NodeBase: makeBase("StringTypeAnnotation", span)}
}

// MixedTypeAnnotation is the opaque JSON value type.
type MixedTypeAnnotation struct {
	NodeBase
}

func (*MixedTypeAnnotation) typeAnnotationNode() {}

// NewMixedTypeAnnotation builds a MixedTypeAnnotation node.
func NewMixedTypeAnnotation(span Span) *MixedTypeAnnotation {
	return &MixedTypeAnnotation{NodeBase: makeBase("MixedTypeAnnotation", span)}
}

// GenericTypeAnnotation is a named type reference.
type GenericTypeAnnotation struct {
	NodeBase
	ID             *Identifier                 `json:"id"`
	TypeParameters *TypeParameterInstantiation `json:"typeParameters,omitempty"`
}

func (*GenericTypeAnnotation) typeAnnotationNode() {}

// NewGenericTypeAnnotation builds a GenericTypeAnnotation node.
func NewGenericTypeAnnotation(id *Identifier, typeParameters *TypeParameterInstantiation, span Span) *GenericTypeAnnotation {
	return &GenericTypeAnnotation{NodeBase: makeBase("GenericTypeAnnotation", span), ID: id, TypeParameters: typeParameters}
}

// NullableTypeAnnotation wraps the option inner type.
type NullableTypeAnnotation struct {
	NodeBase
	TypeAnnotation TypeAnnotation `json:"typeAnnotation"`
}

func (*NullableTypeAnnotation) typeAnnotationNode() {}

// NewNullableTypeAnnotation builds a NullableTypeAnnotation node.
func NewNullableTypeAnnotation(inner TypeAnnotation, span Span) *NullableTypeAnnotation {
	return &NullableTypeAnnotation{NodeBase: makeBase("NullableTypeAnnotation", span), TypeAnnotation: inner}
}

// ArrayTypeAnnotation wraps the array element type.
type ArrayTypeAnnotation struct {
	NodeBase
	ElementType TypeAnnotation `json:"elementType"`
}

func (*ArrayTypeAnnotation) typeAnnotationNode() {}

// NewArrayTypeAnnotation builds an ArrayTypeAnnotation node.
func NewArrayTypeAnnotation(element TypeAnnotation, span Span) *ArrayTypeAnnotation {
	return &ArrayTypeAnnotation{NodeBase: makeBase("ArrayTypeAnnotation", span), ElementType: element}
}

// ObjectTypeIndexer is the {[key: string]: V} member a dictionary translates
// to. Key is always a StringTypeAnnotation here.
type ObjectTypeIndexer struct {
	NodeBase
	Key   TypeAnnotation `json:"key"`
	Value TypeAnnotation `json:"value"`
}

// NewObjectTypeIndexer builds an ObjectTypeIndexer node.
func NewObjectTypeIndexer(key, value TypeAnnotation, span Span) *ObjectTypeIndexer {
	return &ObjectTypeIndexer{NodeBase: makeBase("ObjectTypeIndexer", span), Key: key, Value: value}
}

// ObjectTypeAnnotation is a record body: named members plus optional
// indexers. A dictionary is an ObjectTypeAnnotation with one indexer and no
// properties.
type ObjectTypeAnnotation struct {
	NodeBase
	Properties []ObjectMember       `json:"properties"`
	Indexers   []*ObjectTypeIndexer `json:"indexers"`
}

func (*ObjectTypeAnnotation) typeAnnotationNode() {}

// NewObjectTypeAnnotation builds an ObjectTypeAnnotation node.
func NewObjectTypeAnnotation(properties []ObjectMember, indexers []*ObjectTypeIndexer, span Span) *ObjectTypeAnnotation {
	if properties == nil {
		properties = []ObjectMember{}
	}
	if indexers == nil {
		indexers = []*ObjectTypeIndexer{}
	}
	return &ObjectTypeAnnotation{NodeBase: makeBase("ObjectTypeAnnotation", span), Properties: properties, Indexers: indexers}
}

// ObjectTypeProperty is one named member of a record body.
type ObjectTypeProperty struct {
	NodeBase
	Key      *Identifier    `json:"key"`
	Value    TypeAnnotation `json:"value"`
	Method   bool           `json:"method"`
	Optional bool           `json:"optional"`
}

func (*ObjectTypeProperty) objectMemberNode() {}

// NewObjectTypeProperty builds an ObjectTypeProperty node. Method is set when
// the value is a function annotation.
func NewObjectTypeProperty(key *Identifier, value TypeAnnotation, optional bool, span Span) *ObjectTypeProperty {
	_, isFn := value.(*FunctionTypeAnnotation)
	return &ObjectTypeProperty{
		NodeBase: makeBase("ObjectTypeProperty", span),
		Key:      key,
		Value:    value,
		Method:   isFn,
		Optional: optional,
	}
}

// ObjectTypeSpreadProperty is the base-properties spread member.
type ObjectTypeSpreadProperty struct {
	NodeBase
	Argument TypeAnnotation `json:"argument"`
}

func (*ObjectTypeSpreadProperty) objectMemberNode() {}

// NewObjectTypeSpreadProperty builds an ObjectTypeSpreadProperty node.
func NewObjectTypeSpreadProperty(argument TypeAnnotation, span Span) *ObjectTypeSpreadProperty {
	return &ObjectTypeSpreadProperty{NodeBase: makeBase("ObjectTypeSpreadProperty", span), Argument: argument}
}

// FunctionTypeParam is one parameter of a function annotation. Name is the
// synthetic argN identifier, or "callback" for the curried-callback form.
type FunctionTypeParam struct {
	NodeBase
	Name           *Identifier    `json:"name"`
	TypeAnnotation TypeAnnotation `json:"typeAnnotation"`
}

// NewFunctionTypeParam builds a FunctionTypeParam node.
func NewFunctionTypeParam(name *Identifier, annotation TypeAnnotation, span Span) *FunctionTypeParam {
	return &FunctionTypeParam{NodeBase: makeBase("FunctionTypeParam", span), Name: name, TypeAnnotation: annotation}
}

// FunctionTypeAnnotation is an arrow signature: ordered params plus one
// return type.
type FunctionTypeAnnotation struct {
	NodeBase
	Params     []*FunctionTypeParam `json:"params"`
	ReturnType TypeAnnotation       `json:"returnType"`
}

func (*FunctionTypeAnnotation) typeAnnotationNode() {}

// NewFunctionTypeAnnotation builds a FunctionTypeAnnotation node.
func NewFunctionTypeAnnotation(params []*FunctionTypeParam, returnType TypeAnnotation, span Span) *FunctionTypeAnnotation {
	if params == nil {
		params = []*FunctionTypeParam{}
	}
	return &FunctionTypeAnnotation{NodeBase: makeBase("FunctionTypeAnnotation", span), Params: params, ReturnType: returnType}
}

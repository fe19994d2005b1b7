package parser

import (
	"fmt"
	"strings"

	"github.com/resast/resast/pkg/ast"
	"github.com/resast/resast/pkg/types"
)

// Annotation mini-language keywords. Fixed surface, not configurable.
const (
	voidKeyword     = "unit"
	stringKeyword   = "string"
	mixedKeyword    = "Js.Json.t"
	nullableWrapper = "option"
	arrayWrapper    = "array"
	dictWrapper     = "Js.Dict.t"
	arrowToken      = "=>"
)

// DefaultMaxDepth bounds translator recursion. Well-formed annotations stay
// in single digits; the bound exists so adversarial nesting degrades to a
// diagnostic instead of a stack overflow.
const DefaultMaxDepth = 32

// Translator converts type-annotation text fragments into annotation nodes.
// It never fails: unrecognized fragments become Void nodes (the documented
// default), structural problems become diagnostics returned alongside the
// node. One Translator serves one parse invocation.
type Translator struct {
	idx      *LineIndex
	source   *string
	maxDepth int
}

// NewTranslator builds a Translator over an indexed source. maxDepth <= 0
// selects DefaultMaxDepth.
func NewTranslator(idx *LineIndex, source *string, maxDepth int) *Translator {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Translator{idx: idx, source: source, maxDepth: maxDepth}
}

// Translate converts one trimmed annotation fragment. base is the fragment's
// offset in the source buffer; node spans derive from it.
//
// Resolution order, first match wins:
//
//	unit                      Void
//	string                    String
//	(params) => ret           Function, params and ret translated recursively
//	left => ret               Function with one param (none when left is unit)
//	option<T>                 Nullable(T)
//	array<T>                  Array(T)
//	Js.Dict.t<V>              string-keyed dictionary of V
//	Js.Json.t                 Mixed
//	anything else             Void, silently
func (t *Translator) Translate(fragment string, base int) (ast.TypeAnnotation, []types.Diagnostic) {
	var diags []types.Diagnostic
	node := t.translate(fragment, base, 0, &diags)
	return node, diags
}

// TranslateSignature converts a whole method signature. The curried-callback
// form ((params) => cbRet) => mainRet is handled here, ahead of the generic
// rules, so the callback parameter gets its synthesized name; everything else
// falls through to Translate.
func (t *Translator) TranslateSignature(signature string, base int) (ast.TypeAnnotation, []types.Diagnostic) {
	var diags []types.Diagnostic
	sig, sigBase := trimFragment(signature, base)

	if node, ok := t.translateCurriedCallback(sig, sigBase, &diags); ok {
		return node, diags
	}

	node := t.translate(sig, sigBase, 0, &diags)
	return node, diags
}

func (t *Translator) translate(fragment string, base int, depth int, diags *[]types.Diagnostic) ast.TypeAnnotation {
	frag, fragBase := trimFragment(fragment, base)
	span := t.span(fragBase, fragBase+len(frag))

	if depth >= t.maxDepth {
		*diags = append(*diags, t.diagnosticAt(fragBase,
			fmt.Sprintf("type annotation nested deeper than %d levels", t.maxDepth)))
		return ast.NewVoidTypeAnnotation(span)
	}

	if frag == voidKeyword {
		return ast.NewVoidTypeAnnotation(span)
	}
	if frag == stringKeyword {
		return ast.NewStringTypeAnnotation(span)
	}

	if node, ok := t.translateParenFunction(frag, fragBase, depth, diags); ok {
		return node
	}
	if node, ok := t.translateBareFunction(frag, fragBase, depth, diags); ok {
		return node
	}

	if inner, innerBase, ok := wrapperInner(frag, fragBase, nullableWrapper); ok {
		return ast.NewNullableTypeAnnotation(t.translate(inner, innerBase, depth+1, diags), span)
	}
	if inner, innerBase, ok := wrapperInner(frag, fragBase, arrayWrapper); ok {
		return ast.NewArrayTypeAnnotation(t.translate(inner, innerBase, depth+1, diags), span)
	}
	if inner, innerBase, ok := wrapperInner(frag, fragBase, dictWrapper); ok {
		value := t.translate(inner, innerBase, depth+1, diags)
		indexer := ast.NewObjectTypeIndexer(ast.NewStringTypeAnnotation(span), value, span)
		return ast.NewObjectTypeAnnotation(nil, []*ast.ObjectTypeIndexer{indexer}, span)
	}

	if frag == mixedKeyword {
		return ast.NewMixedTypeAnnotation(span)
	}

	// Unrecognized syntax degrades to Void. Documented default, no
	// diagnostic.
	return ast.NewVoidTypeAnnotation(span)
}

// translateParenFunction handles "(params) => ret": a leading paren whose
// balanced close is immediately followed by an arrow.
func (t *Translator) translateParenFunction(frag string, base, depth int, diags *[]types.Diagnostic) (ast.TypeAnnotation, bool) {
	if len(frag) == 0 || frag[0] != '(' {
		return nil, false
	}
	close := MatchDelimiter(frag, 0, '(', ')')
	if close < 0 {
		return nil, false
	}
	after, afterBase := trimFragment(frag[close+1:], base+close+1)
	if !strings.HasPrefix(after, arrowToken) {
		return nil, false
	}

	params := t.translateParams(frag[1:close], base+1, depth, diags)
	retText, retBase := trimFragment(after[len(arrowToken):], afterBase+len(arrowToken))
	ret := t.translate(retText, retBase, depth+1, diags)

	span := t.span(base, base+len(frag))
	return ast.NewFunctionTypeAnnotation(params, ret, span), true
}

// translateBareFunction handles "left => ret" where left carries no parens:
// one parameter, or none when left is the unit keyword.
func (t *Translator) translateBareFunction(frag string, base, depth int, diags *[]types.Diagnostic) (ast.TypeAnnotation, bool) {
	arrow := arrowIndex(frag)
	if arrow < 0 {
		return nil, false
	}

	leftText, leftBase := trimFragment(frag[:arrow], base)
	retText, retBase := trimFragment(frag[arrow+len(arrowToken):], base+arrow+len(arrowToken))
	ret := t.translate(retText, retBase, depth+1, diags)

	var params []*ast.FunctionTypeParam
	if leftText != voidKeyword {
		pspan := t.span(leftBase, leftBase+len(leftText))
		param := t.translate(leftText, leftBase, depth+1, diags)
		params = append(params, ast.NewFunctionTypeParam(ast.NewIdentifier("arg0", pspan), param, pspan))
	}

	span := t.span(base, base+len(frag))
	return ast.NewFunctionTypeAnnotation(params, ret, span), true
}

// translateCurriedCallback handles "((params) => cbRet) => mainRet". The
// single parameter is named "callback" and typed as the inner function.
func (t *Translator) translateCurriedCallback(sig string, base int, diags *[]types.Diagnostic) (ast.TypeAnnotation, bool) {
	if len(sig) == 0 || sig[0] != '(' {
		return nil, false
	}
	inner := skipSpaces(sig, 1)
	if inner >= len(sig) || sig[inner] != '(' {
		return nil, false
	}

	innerClose := MatchDelimiter(sig, inner, '(', ')')
	if innerClose < 0 {
		return nil, false
	}
	afterInner, afterInnerBase := trimFragment(sig[innerClose+1:], innerClose+1)
	if !strings.HasPrefix(afterInner, arrowToken) {
		return nil, false
	}

	outerClose := MatchDelimiter(sig, 0, '(', ')')
	if outerClose < 0 || outerClose <= innerClose {
		return nil, false
	}
	afterOuter, afterOuterBase := trimFragment(sig[outerClose+1:], outerClose+1)
	if !strings.HasPrefix(afterOuter, arrowToken) {
		return nil, false
	}

	cbParams := t.translateParams(sig[inner+1:innerClose], base+inner+1, 0, diags)
	cbRetText, cbRetRel := trimFragment(sig[afterInnerBase+len(arrowToken):outerClose], afterInnerBase+len(arrowToken))
	cbRet := t.translate(cbRetText, base+cbRetRel, 1, diags)
	cbSpan := t.span(base+inner, base+outerClose)
	cbType := ast.NewFunctionTypeAnnotation(cbParams, cbRet, cbSpan)

	callback := ast.NewFunctionTypeParam(ast.NewIdentifier("callback", cbSpan), cbType, cbSpan)

	mainRetText, mainRetRel := trimFragment(afterOuter[len(arrowToken):], afterOuterBase+len(arrowToken))
	mainRet := t.translate(mainRetText, base+mainRetRel, 1, diags)

	span := t.span(base, base+len(sig))
	return ast.NewFunctionTypeAnnotation([]*ast.FunctionTypeParam{callback}, mainRet, span), true
}

// translateParams splits a parameter list and translates each fragment,
// assigning synthetic arg0..argN names.
func (t *Translator) translateParams(raw string, base, depth int, diags *[]types.Diagnostic) []*ast.FunctionTypeParam {
	fragments, ds := SplitParams(raw, base)
	*diags = append(*diags, ds...)

	params := make([]*ast.FunctionTypeParam, 0, len(fragments))
	for i, f := range fragments {
		node := t.translate(f.Text, f.Start, depth+1, diags)
		pspan := t.span(f.Start, f.Start+len(f.Text))
		name := ast.NewIdentifier(fmt.Sprintf("arg%d", i), pspan)
		params = append(params, ast.NewFunctionTypeParam(name, node, pspan))
	}
	return params
}

// arrowIndex finds "=>" at paren and angle depth zero, or -1. The '>' of an
// arrow never closes an angle bracket.
func arrowIndex(s string) int {
	parens, angles := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			parens++
		case ')':
			parens--
		case '<':
			angles++
		case '>':
			if i > 0 && s[i-1] == '=' {
				continue
			}
			angles--
		case '=':
			if i+1 < len(s) && s[i+1] == '>' && parens == 0 && angles == 0 {
				return i
			}
		}
	}
	return -1
}

// wrapperInner matches "keyword<inner>" where the final byte closes the
// wrapper, mirroring the greedy semantics of a trailing-anchored pattern.
// Anything malformed is simply not a wrapper.
func wrapperInner(frag string, base int, keyword string) (string, int, bool) {
	if !strings.HasPrefix(frag, keyword) {
		return "", 0, false
	}
	rest := frag[len(keyword):]
	if len(rest) < 2 || rest[0] != '<' || frag[len(frag)-1] != '>' {
		return "", 0, false
	}
	open := len(keyword)
	return frag[open+1 : len(frag)-1], base + open + 1, true
}

func (t *Translator) span(start, end int) ast.Span {
	return t.idx.Span(start, end, t.source)
}

func (t *Translator) diagnosticAt(offset int, message string) types.Diagnostic {
	if offset < 0 {
		offset = 0
	}
	pos, _ := t.idx.PositionAt(offset)
	if offset > t.idx.Length() {
		offset = t.idx.Length()
	}
	return types.Diagnostic{Message: message, Line: pos.Line, Column: pos.Column, Position: offset}
}

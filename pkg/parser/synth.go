package parser

import (
	"fmt"
	"strings"

	"github.com/resast/resast/pkg/ast"
	"github.com/resast/resast/pkg/types"
)

// Designated spread markers. Their textual presence in a type body is the
// only trigger for inheritance and base-props synthesis.
const (
	superclassSpreadMarker = "...TurboModule.spec"
	viewPropsSpreadMarker  = "...View.viewProps"
)

// Fixed identifiers of the synthesized registration calls and inherited
// types. The downstream generator matches on these names.
const (
	registryObjectName   = "TurboModuleRegistry"
	registryPropertyName = "getEnforcing"
	componentCalleeName  = "codegenNativeComponent"
	superclassName       = "TurboModule"
	viewPropsName        = "ViewProps"
	specInterfaceName    = "Spec"
)

// synthesizer builds declaration nodes from recognizer hits. One per parse
// invocation; it owns no state beyond the indexed source.
type synthesizer struct {
	src    string
	idx    *LineIndex
	source *string
	tr     *Translator
}

// synthesize dispatches one hit to its builder. A panic inside a builder is
// recovered into a diagnostic at the hit's position and the declaration is
// skipped; siblings proceed.
func (s *synthesizer) synthesize(hit *types.Hit) (decl ast.Declaration, diags []types.Diagnostic) {
	defer func() {
		if r := recover(); r != nil {
			decl = nil
			diags = append(diags, s.diagnosticAt(hit.Start,
				fmt.Sprintf("declaration synthesis failed: %s", panicMessage(r))))
		}
	}()

	switch hit.Kind {
	case types.KindOpen:
		return s.importDeclaration(hit)
	case types.KindType:
		return s.typeDeclaration(hit)
	case types.KindModule:
		return s.moduleRegistration(hit)
	case types.KindComponent:
		return s.componentRegistration(hit)
	}
	return nil, []types.Diagnostic{s.diagnosticAt(hit.Start,
		fmt.Sprintf("unknown pattern kind %q", hit.Kind))}
}

// importDeclaration synthesizes an import from an open statement.
func (s *synthesizer) importDeclaration(hit *types.Hit) (ast.Declaration, []types.Diagnostic) {
	module, ok := hit.Group("module")
	if !ok || module.Value == "" {
		return nil, []types.Diagnostic{s.diagnosticAt(hit.Start, "open statement without a module name")}
	}

	moduleSpan := s.span(module.Start, module.End)
	local := module.Value
	if dot := strings.LastIndexByte(local, '.'); dot >= 0 {
		local = local[dot+1:]
	}

	specifier := ast.NewImportDefaultSpecifier(ast.NewIdentifier(local, moduleSpan), moduleSpan)
	source := ast.NewStringLiteral(module.Value, moduleSpan)

	return ast.NewImportDeclaration(
		[]*ast.ImportDefaultSpecifier{specifier},
		source,
		s.span(hit.Start, hit.End),
	), nil
}

// typeDeclaration synthesizes an interface or type alias from the type
// definition. The recognizer capture ends at the opening brace; the body is
// delimited here with the balanced scanner.
func (s *synthesizer) typeDeclaration(hit *types.Hit) (ast.Declaration, []types.Diagnostic) {
	var diags []types.Diagnostic

	name, ok := hit.Group("name")
	if !ok || name.Value == "" {
		return nil, append(diags, s.diagnosticAt(hit.Start, "type definition without a name"))
	}
	brace, ok := hit.Group("brace")
	if !ok {
		return nil, append(diags, s.diagnosticAt(hit.Start, "type definition without a body"))
	}

	bodyClose := MatchDelimiter(s.src, brace.Start, '{', '}')
	if bodyClose < 0 {
		return nil, append(diags, s.diagnosticAt(brace.Start,
			fmt.Sprintf("type body of %q never closes", name.Value)))
	}
	body := s.src[brace.Start+1 : bodyClose]

	methods, ds := SegmentMethods(body, brace.Start+1)
	diags = append(diags, ds...)

	hasSuperclass := strings.Contains(body, superclassSpreadMarker)
	hasViewProps := strings.Contains(body, viewPropsSpreadMarker)

	members := make([]ast.ObjectMember, 0, len(methods)+1)
	if hasViewProps {
		markerSpan := s.markerSpan(body, brace.Start+1, viewPropsSpreadMarker)
		argument := ast.NewGenericTypeAnnotation(ast.NewIdentifier(viewPropsName, markerSpan), nil, markerSpan)
		members = append(members, ast.NewObjectTypeSpreadProperty(argument, markerSpan))
	}
	for _, m := range methods {
		value, ds := s.tr.TranslateSignature(m.Signature, m.SigStart)
		diags = append(diags, ds...)
		key := ast.NewIdentifier(m.Name, s.span(m.NameStart, m.NameEnd))
		members = append(members, ast.NewObjectTypeProperty(key, value, m.Optional, s.span(m.Start, m.End)))
	}

	object := ast.NewObjectTypeAnnotation(members, nil, s.span(brace.Start, bodyClose+1))

	declEnd := bodyClose + 1
	if hit.End > declEnd {
		declEnd = hit.End
	}
	declSpan := s.span(hit.Start, declEnd)
	nameSpan := s.span(name.Start, name.End)

	if name.Value == "spec" || hasSuperclass {
		emitted := name.Value
		if emitted == "spec" {
			emitted = specInterfaceName
		}
		var extends []*ast.InterfaceExtends
		if hasSuperclass {
			markerSpan := s.markerSpan(body, brace.Start+1, superclassSpreadMarker)
			extends = append(extends, ast.NewInterfaceExtends(ast.NewIdentifier(superclassName, markerSpan), markerSpan))
		}
		return ast.NewInterfaceDeclaration(ast.NewIdentifier(emitted, nameSpan), object, extends, declSpan), diags
	}

	return ast.NewTypeAlias(ast.NewIdentifier(name.Value, nameSpan), object, declSpan), diags
}

// moduleRegistration synthesizes the default-export registration call for a
// native module.
func (s *synthesizer) moduleRegistration(hit *types.Hit) (ast.Declaration, []types.Diagnostic) {
	name, ok := hit.Group("name")
	if !ok {
		return nil, []types.Diagnostic{s.diagnosticAt(hit.Start, "module registration without a module name")}
	}

	hitSpan := s.span(hit.Start, hit.End)
	callee := ast.NewMemberExpression(
		ast.NewIdentifier(registryObjectName, hitSpan),
		ast.NewIdentifier(registryPropertyName, hitSpan),
		hitSpan,
	)
	typeArgs := ast.NewTypeParameterInstantiation([]ast.TypeAnnotation{
		ast.NewGenericTypeAnnotation(ast.NewIdentifier(specInterfaceName, hitSpan), nil, hitSpan),
	}, hitSpan)
	argument := ast.NewStringLiteral(name.Value, s.span(name.Start-1, name.End+1))

	call := ast.NewCallExpression(callee, typeArgs, []ast.Node{argument}, hitSpan)
	return ast.NewExportDefaultDeclaration(call, hitSpan), nil
}

// componentRegistration synthesizes the default-export registration call for
// a native component.
func (s *synthesizer) componentRegistration(hit *types.Hit) (ast.Declaration, []types.Diagnostic) {
	name, ok := hit.Group("name")
	if !ok {
		return nil, []types.Diagnostic{s.diagnosticAt(hit.Start, "component registration without a component name")}
	}

	hitSpan := s.span(hit.Start, hit.End)
	callee := ast.NewIdentifier(componentCalleeName, hitSpan)
	argument := ast.NewStringLiteral(name.Value, s.span(name.Start-1, name.End+1))

	call := ast.NewCallExpression(callee, nil, []ast.Node{argument}, hitSpan)
	return ast.NewExportDefaultDeclaration(call, hitSpan), nil
}

// markerSpan locates a spread marker's exact span within a type body.
func (s *synthesizer) markerSpan(body string, base int, marker string) ast.Span {
	at := strings.Index(body, marker)
	if at < 0 {
		return s.span(base, base)
	}
	return s.span(base+at, base+at+len(marker))
}

func (s *synthesizer) span(start, end int) ast.Span {
	return s.idx.Span(start, end, s.source)
}

func (s *synthesizer) diagnosticAt(offset int, message string) types.Diagnostic {
	if offset < 0 {
		offset = 0
	}
	pos, _ := s.idx.PositionAt(offset)
	if offset > s.idx.Length() {
		offset = s.idx.Length()
	}
	return types.Diagnostic{Message: message, Line: pos.Line, Column: pos.Column, Position: offset}
}

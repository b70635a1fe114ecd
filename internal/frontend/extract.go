package frontend

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/driref-dev/driref/internal/symbol"
)

// predeclared names render without a package qualifier.
var builtinTypes = map[string]bool{
	"bool": true, "byte": true, "complex64": true, "complex128": true,
	"error": true, "float32": true, "float64": true, "int": true,
	"int8": true, "int16": true, "int32": true, "int64": true,
	"rune": true, "string": true, "uint": true, "uint8": true,
	"uint16": true, "uint32": true, "uint64": true, "uintptr": true,
	"any": true, "comparable": true,
}

// fileScope accumulates the symbol graph of one source file.
type fileScope struct {
	file    string
	content []byte
	pkg     *symbol.Symbol
	classes map[string]*symbol.Symbol
	decls   []Declaration
}

func newFileScope(file string, content []byte) *fileScope {
	return &fileScope{
		file:    file,
		content: content,
		classes: make(map[string]*symbol.Symbol),
	}
}

func (s *fileScope) record(sym *symbol.Symbol, node *sitter.Node) {
	s.decls = append(s.decls, Declaration{
		Sym:  sym,
		File: s.file,
		Line: int(node.StartPoint().Row) + 1,
	})
}

// collectClasses registers every type declaration before the main pass, so
// forward references within the file resolve to the right class symbol.
func (s *fileScope) collectClasses(root *sitter.Node) {
	for i := 0; i < int(root.ChildCount()); i++ {
		child := root.Child(i)
		switch child.Type() {
		case "package_clause":
			if name := child.NamedChild(0); name != nil && s.pkg == nil {
				s.pkg = &symbol.Symbol{Kind: symbol.KindPackage, Name: name.Content(s.content)}
			}
		case "type_declaration":
			s.collectTypeSpecs(child)
		}
	}
	if s.pkg == nil {
		s.pkg = &symbol.Symbol{Kind: symbol.KindPackage}
	}
}

func (s *fileScope) collectTypeSpecs(decl *sitter.Node) {
	for i := 0; i < int(decl.ChildCount()); i++ {
		spec := decl.Child(i)
		if spec.Type() != "type_spec" && spec.Type() != "type_alias" {
			continue
		}
		nameNode := spec.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		name := nameNode.Content(s.content)
		s.classes[name] = &symbol.Symbol{
			Kind:       symbol.KindClass,
			Name:       name,
			Containing: s.pkg,
			ClassID:    &symbol.ClassID{PackageName: s.pkg.Name, ClassNames: name},
			TypeParams: s.typeParamNames(spec.ChildByFieldName("type_parameters")),
		}
	}
}

func (s *fileScope) extract(node *sitter.Node) {
	switch node.Type() {
	case "package_clause":
		s.record(s.pkg, node)
		return
	case "type_declaration":
		s.extractTypeDecl(node)
		return
	case "function_declaration":
		s.extractFunction(node, nil)
		return
	case "method_declaration":
		s.extractFunction(node, node.ChildByFieldName("receiver"))
		return
	case "const_declaration":
		s.extractConsts(node)
		return
	case "var_declaration":
		s.extractVars(node)
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		s.extract(node.Child(i))
	}
}

func (s *fileScope) extractTypeDecl(decl *sitter.Node) {
	for i := 0; i < int(decl.ChildCount()); i++ {
		spec := decl.Child(i)
		if spec.Type() != "type_spec" && spec.Type() != "type_alias" {
			continue
		}
		nameNode := spec.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		class, ok := s.classes[nameNode.Content(s.content)]
		if !ok {
			continue
		}
		s.record(class, spec)
		for _, tp := range class.TypeParams {
			s.record(&symbol.Symbol{
				Kind:       symbol.KindTypeParameter,
				Name:       tp,
				Containing: class,
			}, spec)
		}
	}
}

func (s *fileScope) extractFunction(node *sitter.Node, receiverNode *sitter.Node) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return
	}

	typeParams := s.typeParamNames(node.ChildByFieldName("type_parameters"))
	tpScope := make(map[string]*symbol.Symbol, len(typeParams))

	fn := &symbol.Symbol{
		Kind:       symbol.KindFunction,
		Name:       nameNode.Content(s.content),
		Containing: s.pkg,
		TypeParams: typeParams,
	}
	for _, tp := range typeParams {
		tpScope[tp] = &symbol.Symbol{Kind: symbol.KindTypeParameter, Name: tp, Containing: fn}
	}
	if receiverNode != nil {
		fn.Receiver = s.receiverType(receiverNode)
	}
	fn.Params = s.valueParams(node.ChildByFieldName("parameters"), tpScope)

	s.record(fn, node)
	for _, tp := range typeParams {
		s.record(tpScope[tp], node)
	}
	for _, param := range fn.Params {
		if param.Name == "" || param.Name == "_" {
			continue
		}
		s.record(&symbol.Symbol{
			Kind:       symbol.KindValueParameter,
			Name:       param.Name,
			Containing: fn,
		}, node)
	}
}

// extractConsts maps typed const groups onto enum entries: a spec whose
// declared type is a class from this file becomes an entry of that class, and
// iota-style follower specs without a type or value inherit the group's type.
// Anything else is recorded as a plain package-level property.
func (s *fileScope) extractConsts(decl *sitter.Node) {
	var group *symbol.Symbol
	for i := 0; i < int(decl.ChildCount()); i++ {
		spec := decl.Child(i)
		if spec.Type() != "const_spec" {
			continue
		}

		if typeNode := spec.ChildByFieldName("type"); typeNode != nil {
			group = nil
			if typeNode.Type() == "type_identifier" {
				group = s.classes[typeNode.Content(s.content)]
			}
		} else if value := spec.ChildByFieldName("value"); value != nil && value.Content(s.content) != "iota" {
			// An untyped spec with its own value starts a fresh, untyped run.
			group = nil
		}

		for _, nameNode := range nameChildren(spec) {
			name := nameNode.Content(s.content)
			if name == "_" {
				continue
			}
			if group != nil {
				s.record(&symbol.Symbol{
					Kind:       symbol.KindEnumEntry,
					Name:       name,
					Containing: group,
				}, spec)
			} else {
				s.record(&symbol.Symbol{
					Kind:       symbol.KindProperty,
					Name:       name,
					Containing: s.pkg,
				}, spec)
			}
		}
	}
}

func (s *fileScope) extractVars(decl *sitter.Node) {
	for i := 0; i < int(decl.ChildCount()); i++ {
		spec := decl.Child(i)
		if spec.Type() != "var_spec" {
			continue
		}
		for _, nameNode := range nameChildren(spec) {
			name := nameNode.Content(s.content)
			if name == "_" {
				continue
			}
			s.record(&symbol.Symbol{
				Kind:       symbol.KindProperty,
				Name:       name,
				Containing: s.pkg,
			}, spec)
		}
	}
}

func (s *fileScope) typeParamNames(list *sitter.Node) []string {
	if list == nil {
		return nil
	}
	var names []string
	for i := 0; i < int(list.NamedChildCount()); i++ {
		paramDecl := list.NamedChild(i)
		// grammar versions differ on the node name for a type parameter
		switch paramDecl.Type() {
		case "type_parameter_declaration", "parameter_declaration":
		default:
			continue
		}
		for j := 0; j < int(paramDecl.NamedChildCount()); j++ {
			child := paramDecl.NamedChild(j)
			if child.Type() == "identifier" {
				names = append(names, child.Content(s.content))
			}
		}
	}
	return names
}

func (s *fileScope) valueParams(list *sitter.Node, tpScope map[string]*symbol.Symbol) []symbol.Param {
	if list == nil {
		return nil
	}
	var params []symbol.Param
	for i := 0; i < int(list.NamedChildCount()); i++ {
		paramDecl := list.NamedChild(i)
		switch paramDecl.Type() {
		case "parameter_declaration", "variadic_parameter_declaration":
		default:
			continue
		}

		typ := s.typeFor(paramDecl.ChildByFieldName("type"), tpScope)
		names := nameChildren(paramDecl)
		if len(names) == 0 {
			params = append(params, symbol.Param{Type: typ})
			continue
		}
		for _, nameNode := range names {
			params = append(params, symbol.Param{Name: nameNode.Content(s.content), Type: typ})
		}
	}
	return params
}

// receiverType resolves a method receiver to its base class type, stripping
// pointers and instantiation arguments.
func (s *fileScope) receiverType(receiver *sitter.Node) *symbol.Type {
	var typeNode *sitter.Node
	for i := 0; i < int(receiver.NamedChildCount()); i++ {
		if decl := receiver.NamedChild(i); decl.Type() == "parameter_declaration" {
			typeNode = decl.ChildByFieldName("type")
			break
		}
	}
	for typeNode != nil {
		switch typeNode.Type() {
		case "pointer_type", "parenthesized_type":
			typeNode = typeNode.NamedChild(0)
		case "generic_type":
			typeNode = typeNode.ChildByFieldName("type")
		default:
			return s.typeFor(typeNode, nil)
		}
	}
	return nil
}

// typeFor renders a syntactic type expression into the resolved-type shape
// the identifier core consumes. Identifiers resolve against this file's
// classes and the enclosing type-parameter scope; everything else becomes an
// opaque class named by its normalized source text.
func (s *fileScope) typeFor(node *sitter.Node, tpScope map[string]*symbol.Symbol) *symbol.Type {
	if node == nil {
		return &symbol.Type{Shape: symbol.ShapeError, Text: "<missing type>"}
	}

	switch node.Type() {
	case "type_identifier", "identifier":
		name := node.Content(s.content)
		if tp, ok := tpScope[name]; ok {
			return &symbol.Type{Shape: symbol.ShapeTypeParameter, TypeParam: tp}
		}
		if class, ok := s.classes[name]; ok {
			return &symbol.Type{Shape: symbol.ShapeClass, Class: class}
		}
		if builtinTypes[name] {
			return s.opaqueClassType(name, "")
		}
		return s.opaqueClassType(name, s.pkg.Name)
	case "qualified_type":
		pkgNode := node.ChildByFieldName("package")
		nameNode := node.ChildByFieldName("name")
		if pkgNode != nil && nameNode != nil {
			return s.opaqueClassType(nameNode.Content(s.content), pkgNode.Content(s.content))
		}
	case "generic_type":
		base := s.typeFor(node.ChildByFieldName("type"), tpScope)
		if args := node.ChildByFieldName("type_arguments"); args != nil && base.Shape == symbol.ShapeClass {
			instantiated := *base
			for i := 0; i < int(args.NamedChildCount()); i++ {
				instantiated.Args = append(instantiated.Args, s.typeFor(args.NamedChild(i), tpScope))
			}
			return &instantiated
		}
		return base
	}

	return s.opaqueClassType(normalizeText(node.Content(s.content)), "")
}

// opaqueClassType stands in for a type the adapter does not resolve further.
func (s *fileScope) opaqueClassType(name, pkg string) *symbol.Type {
	return &symbol.Type{
		Shape: symbol.ShapeClass,
		Class: &symbol.Symbol{
			Kind:    symbol.KindClass,
			Name:    name,
			ClassID: &symbol.ClassID{PackageName: pkg, ClassNames: name},
		},
	}
}

// nameChildren returns the declared-name identifiers of a spec or parameter
// declaration. Declared names parse as plain identifiers while types and
// values parse as other node kinds, so the filter is unambiguous.
func nameChildren(node *sitter.Node) []*sitter.Node {
	var out []*sitter.Node
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() == "identifier" {
			out = append(out, child)
		}
	}
	return out
}

func normalizeText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

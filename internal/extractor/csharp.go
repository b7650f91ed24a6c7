package extractor

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/csharp"
)

// CSharpCollector implements SiteCollector for C#.
type CSharpCollector struct{}

func (c *CSharpCollector) GetLanguage() *sitter.Language {
	return csharp.GetLanguage()
}

// CollectSites walks the tree in pre-order and classifies every invocation
// expression and attribute it meets, so sites come out in document order.
func (c *CSharpCollector) CollectSites(root *sitter.Node, sourceCode []byte) []Site {
	var sites []Site
	if root == nil {
		return sites
	}

	cursor := sitter.NewTreeCursor(root)
	defer cursor.Close()

	var visit func(*sitter.TreeCursor)
	visit = func(cur *sitter.TreeCursor) {
		n := cur.CurrentNode()
		switch n.Type() {
		case "invocation_expression":
			sites = append(sites, c.classifyInvocation(n, sourceCode))
		case "attribute":
			sites = append(sites, c.classifyAttribute(n, sourceCode))
		}
		if cur.GoToFirstChild() {
			visit(cur)
			for cur.GoToNextSibling() {
				visit(cur)
			}
			cur.GoToParent()
		}
	}
	visit(cursor)
	return sites
}

func (c *CSharpCollector) classifyInvocation(node *sitter.Node, sourceCode []byte) Site {
	site := Site{
		Kind:   SiteCall,
		Offset: int(node.StartByte()),
		Text:   node.Content(sourceCode),
	}

	fn := node.ChildByFieldName("function")
	if fn == nil && node.NamedChildCount() > 0 {
		fn = node.NamedChild(0)
	}
	site.Callee, site.Name = c.calleeName(fn, sourceCode)

	argList := node.ChildByFieldName("arguments")
	if argList == nil {
		argList = childOfType(node, "argument_list")
	}
	site.Args = c.collectArguments(argList, "argument", sourceCode)
	return site
}

func (c *CSharpCollector) classifyAttribute(node *sitter.Node, sourceCode []byte) Site {
	site := Site{
		Kind:   SiteAttribute,
		Callee: CalleeIdentifier,
		Offset: int(node.StartByte()),
		Text:   node.Content(sourceCode),
	}

	nameNode := node.ChildByFieldName("name")
	if nameNode == nil && node.NamedChildCount() > 0 {
		nameNode = node.NamedChild(0)
	}
	_, site.Name = c.calleeName(nameNode, sourceCode)

	site.Args = c.collectArguments(childOfType(node, "attribute_argument_list"), "attribute_argument", sourceCode)
	return site
}

// calleeName reduces the expression naming a site to its shape and simple name.
func (c *CSharpCollector) calleeName(node *sitter.Node, sourceCode []byte) (CalleeKind, string) {
	if node == nil {
		return CalleeOther, ""
	}
	switch node.Type() {
	case "identifier", "generic_name", "discard":
		return CalleeIdentifier, simpleName(node, sourceCode)
	case "member_access_expression", "qualified_name", "alias_qualified_name":
		name := node.ChildByFieldName("name")
		if name == nil && node.NamedChildCount() > 0 {
			name = node.NamedChild(int(node.NamedChildCount()) - 1)
		}
		if s := simpleName(name, sourceCode); s != "" {
			return CalleeMemberAccess, s
		}
	}
	return CalleeOther, ""
}

func (c *CSharpCollector) collectArguments(list *sitter.Node, argType string, sourceCode []byte) []Argument {
	var args []Argument
	if list == nil {
		return args
	}
	for i := 0; i < int(list.NamedChildCount()); i++ {
		argNode := list.NamedChild(i)
		if argNode.Type() != argType {
			continue
		}
		first := firstNamedChild(argNode)
		if first == nil {
			args = append(args, Argument{Kind: ArgOther, Text: argNode.Content(sourceCode)})
			continue
		}
		text := first.Content(sourceCode)
		args = append(args, Argument{Kind: classifyLiteral(first.Type(), text), Text: text})
	}
	return args
}

// simpleName returns the identifier of an identifier or generic name node.
func simpleName(node *sitter.Node, sourceCode []byte) string {
	if node == nil {
		return ""
	}
	switch node.Type() {
	case "identifier", "discard":
		// "_" is a discard in some positions but still names the gettext marker.
		return node.Content(sourceCode)
	case "generic_name":
		if id := node.ChildByFieldName("name"); id != nil {
			return id.Content(sourceCode)
		}
		if id := childOfType(node, "identifier"); id != nil {
			return id.Content(sourceCode)
		}
	}
	return ""
}

func childOfType(node *sitter.Node, nodeType string) *sitter.Node {
	if node == nil {
		return nil
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		if child := node.Child(i); child.Type() == nodeType {
			return child
		}
	}
	return nil
}

// firstNamedChild skips comments, which tree-sitter attaches anywhere.
func firstNamedChild(node *sitter.Node) *sitter.Node {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if child := node.NamedChild(i); child.Type() != "comment" {
			return child
		}
	}
	return nil
}

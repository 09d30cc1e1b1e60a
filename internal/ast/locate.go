package ast

// PathTo returns the chain of nodes whose spans contain offset, from root
// down to the innermost node. It is empty when root does not contain offset.
func PathTo(root Node, offset int) []Node {
	var path []Node
	for node := root; node != nil; {
		if !node.NodeSpan().Contains(offset) {
			break
		}
		path = append(path, node)

		var next Node
		for _, child := range Children(node) {
			if child.NodeSpan().Contains(offset) {
				next = child
				break
			}
		}
		node = next
	}
	return path
}

// NodeAt returns the innermost node containing offset, or nil.
func NodeAt(root Node, offset int) Node {
	path := PathTo(root, offset)
	if len(path) == 0 {
		return nil
	}
	return path[len(path)-1]
}

// EnclosingLanguage reports the language of the innermost language block
// or function on the path, falling back to def.
func EnclosingLanguage(path []Node, def string) string {
	for i := len(path) - 1; i >= 0; i-- {
		switch n := path[i].(type) {
		case *Function:
			if n.Language != "" {
				return n.Language
			}
		case *LanguageBlock:
			return n.Language
		}
	}
	return def
}

package drafty

// Transformer rewrites a node during a top-down walk. Returning nil removes the node
// and its subtree.
type Transformer func(node *Node) *Node

// TopDown applies tr to node and then to each of its remaining children.
func TopDown(node *Node, tr Transformer) *Node {
	if node == nil {
		return nil
	}
	node = tr(node)
	if node == nil || len(node.Children) == 0 {
		return node
	}

	var children []*Node
	for _, c := range node.Children {
		if c = TopDown(c, tr); c != nil {
			c.parent = node
			children = append(children, c)
		}
	}
	node.Children = children
	return node
}

// Formatter converts a document tree into values of type T, bottom up.
type Formatter[T any] interface {
	// Apply formats one node. content holds the formatted children, or the wrapped text
	// of a leaf; it is nil when there is nothing inside. context lists the tags of the
	// enclosing nodes, outermost first. Returning false drops the node.
	Apply(tp Tag, data Data, content []T, context []Tag) (T, bool)
	// Text wraps a run of plain text.
	Text(text string) T
}

// Format walks the document tree with f.
func Format[T any](doc *Document, f Formatter[T]) (T, bool) {
	return FormatTree(doc.Tree(), f)
}

// FormatTree walks an already built tree with f.
func FormatTree[T any](tree *Node, f Formatter[T]) (T, bool) {
	if tree == nil {
		var zero T
		return zero, false
	}
	return bottomUp(tree, f, nil)
}

func bottomUp[T any](node *Node, f Formatter[T], context []Tag) (T, bool) {
	inner := context
	if node.Tag != "" {
		inner = append(context[:len(context):len(context)], node.Tag)
	}

	var content []T
	if len(node.Children) > 0 {
		for _, c := range node.Children {
			if v, ok := bottomUp(c, f, inner); ok {
				content = append(content, v)
			}
		}
	} else if node.Text != "" {
		content = append(content, f.Text(node.Text))
	}

	return f.Apply(node.Tag, node.Data, content, context)
}

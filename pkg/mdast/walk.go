package mdast

// WalkFunc is the function signature for Walk callbacks.
// Return a non-nil error to stop the walk.
type WalkFunc func(n *Node) error

// Walk performs a pre-order traversal of the tree starting at root.
// If walkFunc returns a non-nil error, the walk stops and returns that error.
func Walk(root *Node, walkFunc WalkFunc) error {
	if root == nil {
		return nil
	}

	if err := walkFunc(root); err != nil {
		return err
	}

	for _, child := range root.Children {
		if err := Walk(child, walkFunc); err != nil {
			return err
		}
	}

	return nil
}

// WalkContextFunc is the function signature for WalkWithContext callbacks.
type WalkContextFunc func(n *Node, depth int) error

// WalkWithContext performs a traversal with enter and leave callbacks.
// Enter is called before visiting children, leave is called after.
// The root is visited at depth 0. Either callback may be nil.
func WalkWithContext(root *Node, enter, leave WalkContextFunc) error {
	return walkDepth(root, 0, enter, leave)
}

func walkDepth(node *Node, depth int, enter, leave WalkContextFunc) error {
	if node == nil {
		return nil
	}

	if enter != nil {
		if err := enter(node, depth); err != nil {
			return err
		}
	}

	for _, child := range node.Children {
		if err := walkDepth(child, depth+1, enter, leave); err != nil {
			return err
		}
	}

	if leave != nil {
		if err := leave(node, depth); err != nil {
			return err
		}
	}

	return nil
}



// CountNodes returns the number of nodes in the tree rooted at root.
func CountNodes(root *Node) int {
	count := 0
	_ = Walk(root, func(*Node) error {
		count++
		return nil
	})
	return count
}

// Package literal builds ndarray values from nested-list text such as
// "[[1, 2, 3], [1, 2, 3, 4, 5]]".
//
// The text is read as YAML, so JSON arrays, YAML flow sequences and YAML
// block sequences are all accepted. Construction follows the ndarray rules:
// outer lists must match their extent exactly, the innermost list may be
// shorter than its extent and is padded with zero values, a lone scalar is
// broadcast and an empty document yields zero values.
package literal

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/openfluke/ndarray/ndarray"
)

// ErrElement is returned when a scalar cannot be decoded into the element type.
var ErrElement = errors.New("literal: invalid element")

// Parse reads src and returns an array of the given shape.
func Parse[T any](src string, shape ...int) (*ndarray.Array[T], error) {
	if err := ndarray.Shape(shape).Validate(); err != nil {
		return nil, err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(src), &doc); err != nil {
		return nil, fmt.Errorf("literal: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return ndarray.New[T](shape...)
	}

	root := resolve(doc.Content[0])
	switch root.Kind {
	case yaml.ScalarNode:
		if root.Tag == "!!null" {
			return ndarray.New[T](shape...)
		}
		v, err := decodeScalar[T](root)
		if err != nil {
			return nil, err
		}
		return ndarray.Full(v, shape...)
	case yaml.SequenceNode:
		return build[T](root, shape)
	default:
		return nil, fmt.Errorf("%w: line %d, column %d: expected a list or a scalar",
			ndarray.ErrInvalidShape, root.Line, root.Column)
	}
}

func build[T any](node *yaml.Node, shape []int) (*ndarray.Array[T], error) {
	node = resolve(node)
	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("%w: line %d, column %d: expected a list of extent %d",
			ndarray.ErrInvalidShape, node.Line, node.Column, shape[0])
	}

	if len(shape) == 1 {
		if len(node.Content) > shape[0] {
			return nil, fmt.Errorf("%w: line %d, column %d: got %d values for extent %d",
				ndarray.ErrInvalidShape, node.Line, node.Column, len(node.Content), shape[0])
		}
		values := make([]T, len(node.Content))
		for i, child := range node.Content {
			child = resolve(child)
			if child.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("%w: line %d, column %d: expected a scalar",
					ndarray.ErrInvalidShape, child.Line, child.Column)
			}
			v, err := decodeScalar[T](child)
			if err != nil {
				return nil, err
			}
			values[i] = v
		}
		a, err := ndarray.FromValues(shape[0], values...)
		if err != nil {
			return nil, fmt.Errorf("line %d, column %d: %w", node.Line, node.Column, err)
		}
		return a, nil
	}

	if len(node.Content) != shape[0] {
		return nil, fmt.Errorf("%w: line %d, column %d: got %d lists for extent %d",
			ndarray.ErrInvalidShape, node.Line, node.Column, len(node.Content), shape[0])
	}
	subs := make([]*ndarray.Array[T], len(node.Content))
	for i, child := range node.Content {
		sub, err := build[T](child, shape[1:])
		if err != nil {
			return nil, err
		}
		subs[i] = sub
	}
	a, err := ndarray.Stack(shape[0], subs...)
	if err != nil {
		return nil, fmt.Errorf("line %d, column %d: %w", node.Line, node.Column, err)
	}
	return a, nil
}

func decodeScalar[T any](node *yaml.Node) (T, error) {
	var v T
	if err := node.Decode(&v); err != nil {
		return v, fmt.Errorf("%w: line %d, column %d: %q: %v", ErrElement, node.Line, node.Column, node.Value, err)
	}
	return v, nil
}

// resolve follows YAML aliases to the anchored node.
func resolve(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

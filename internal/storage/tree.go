package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var errNoRoots = errors.New(`missing "roots" object`)

// TreeNode is one node of a tree store document: a *URLNode or a *FolderNode.
type TreeNode interface {
	treeNode()
}

// URLNode is a bookmark leaf.
type URLNode struct {
	Bookmark Bookmark
}

// FolderNode holds child nodes in document order.
type FolderNode struct {
	Children []TreeNode
}

func (*URLNode) treeNode()    {}
func (*FolderNode) treeNode() {}

// rawNode is the wire shape shared by every node kind; the "type" field
// decides which fields matter.
type rawNode struct {
	Type     string          `json:"type"`
	Name     *string         `json:"name"`
	URL      *string         `json:"url"`
	Children json.RawMessage `json:"children"`
}

// ReadTree loads a tree store file and returns its bookmarks sorted by title.
// A file that is not valid JSON or has no "roots" member is an error.
func ReadTree(path string) ([]Bookmark, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tree store: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	var doc struct {
		Roots json.RawMessage `json:"roots"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode tree store: %w", err)
	}
	if doc.Roots == nil {
		return nil, fmt.Errorf("decode tree store: %w", errNoRoots)
	}

	return ExtractTree(doc.Roots)
}

// ExtractTree flattens a roots container (an object of top-level sections,
// or an array of nodes) into bookmarks sorted ascending by title. Bookmarks
// without a title sort before all titled ones; ties keep document order.
func ExtractTree(roots []byte) ([]Bookmark, error) {
	nodes, err := DecodeTree(roots)
	if err != nil {
		return nil, err
	}

	bookmarks := flatten(nodes, []Bookmark{})
	sort.SliceStable(bookmarks, func(i, j int) bool {
		return titleLess(bookmarks[i], bookmarks[j])
	})
	return bookmarks, nil
}

// DecodeTree decodes a roots container into nodes, keeping document order.
// Nodes whose type is neither "url" nor "folder" are dropped.
func DecodeTree(roots []byte) ([]TreeNode, error) {
	elems, err := containerElements(roots)
	if err != nil {
		return nil, err
	}

	nodes := []TreeNode{}
	for _, raw := range elems {
		n, err := decodeNode(raw)
		if err != nil {
			return nil, err
		}
		if n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes, nil
}

// containerElements returns the values of a JSON object in key order, or the
// elements of a JSON array. Any other value yields no elements.
func containerElements(raw []byte) ([]json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decode tree container: %w", err)
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return nil, nil
	}

	var elems []json.RawMessage
	for dec.More() {
		if delim == '{' {
			if _, err := dec.Token(); err != nil {
				return nil, fmt.Errorf("decode tree container: %w", err)
			}
		}
		var elem json.RawMessage
		if err := dec.Decode(&elem); err != nil {
			return nil, fmt.Errorf("decode tree container: %w", err)
		}
		elems = append(elems, elem)
	}
	return elems, nil
}

func decodeNode(raw json.RawMessage) (TreeNode, error) {
	if !isObject(raw) {
		return nil, nil
	}

	var r rawNode
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("decode tree node: %w", err)
	}

	switch r.Type {
	case "url":
		var b Bookmark
		if r.Name != nil {
			b.Title = *r.Name
		} else {
			b.TitleMissing = true
		}
		if r.URL != nil {
			b.URL = *r.URL
		} else {
			b.URLMissing = true
		}
		return &URLNode{Bookmark: b}, nil

	case "folder":
		folder := &FolderNode{}
		if len(r.Children) == 0 {
			return folder, nil
		}
		children, err := DecodeTree(r.Children)
		if err != nil {
			return nil, err
		}
		folder.Children = children
		return folder, nil
	}

	return nil, nil
}

func flatten(nodes []TreeNode, out []Bookmark) []Bookmark {
	for _, n := range nodes {
		switch n := n.(type) {
		case *URLNode:
			out = append(out, n.Bookmark)
		case *FolderNode:
			out = flatten(n.Children, out)
		}
	}
	return out
}

func titleLess(a, b Bookmark) bool {
	if a.TitleMissing || b.TitleMissing {
		return a.TitleMissing && !b.TitleMissing
	}
	return a.Title < b.Title
}

func isObject(raw []byte) bool {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '{'
}

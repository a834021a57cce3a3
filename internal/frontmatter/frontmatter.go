package frontmatter

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Delimiter opens and closes the header block.
const Delimiter = "---"

// ErrNoHeader reports a document without a usable header block.
var ErrNoHeader = errors.New("document has no front-matter header")

// Split divides text into header and body on the first two occurrences of
// the delimiter. ok is false when text does not start with the delimiter or
// the closing delimiter is missing.
func Split(text string) (header, body string, ok bool) {
	if !strings.HasPrefix(text, Delimiter) {
		return "", "", false
	}
	parts := strings.SplitN(text, Delimiter, 3)
	if len(parts) < 3 {
		return "", "", false
	}
	return parts[1], parts[2], true
}

// Parse decodes a header and returns its root mapping node.
func Parse(header string) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(header), &doc); err != nil {
		return nil, fmt.Errorf("parse header: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("empty header: %w", ErrNoHeader)
	}
	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.ShortTag() == "!!null" {
		return nil, fmt.Errorf("empty header: %w", ErrNoHeader)
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parse header: expected mapping at line %d", root.Line)
	}
	if len(root.Content) == 0 {
		return nil, fmt.Errorf("empty header: %w", ErrNoHeader)
	}
	return root, nil
}

// Decode splits text and parses its header. Documents without a header
// return an error wrapping ErrNoHeader.
func Decode(text string) (*yaml.Node, error) {
	header, _, ok := Split(text)
	if !ok {
		return nil, ErrNoHeader
	}
	return Parse(header)
}

// Lookup returns the value node of a top-level key, following aliases.
func Lookup(root *yaml.Node, key string) (*yaml.Node, bool) {
	if root == nil || root.Kind != yaml.MappingNode {
		return nil, false
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value != key {
			continue
		}
		value := root.Content[i+1]
		for value.Kind == yaml.AliasNode && value.Alias != nil {
			value = value.Alias
		}
		return value, true
	}
	return nil, false
}

// stateLine matches a top-level state key whose simple scalar value sits on
// the same line, with an optional trailing comment in group 2.
var stateLine = regexp.MustCompile(`^state[ \t]*:[ \t]+([\w-]+|"[^"\\]*"|'[^']*')([ \t]+#.*)?[ \t]*$`)

// SetState returns text with the top-level state key of its header set to
// state. The existing state line is replaced in place so every other byte
// of the document survives; headers without a plain state line are
// re-encoded with the key added.
func SetState(text, state string) (string, error) {
	header, body, ok := Split(text)
	if !ok {
		return "", ErrNoHeader
	}

	if updated, replaced := replaceStateLine(header, state); replaced {
		return Delimiter + updated + Delimiter + body, nil
	}

	root, err := Parse(header)
	if err != nil {
		return "", err
	}
	if value, found := Lookup(root, "state"); found {
		value.Kind = yaml.ScalarNode
		value.Tag = "!!str"
		value.Value = state
		value.Style = 0
		value.Content = nil
	} else {
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: "state"},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: state},
		)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return "", fmt.Errorf("encode header: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encode header: %w", err)
	}
	return Delimiter + "\n" + buf.String() + Delimiter + body, nil
}

func replaceStateLine(header, state string) (string, bool) {
	lines := strings.SplitAfter(header, "\n")
	for i, line := range lines {
		content := strings.TrimRight(line, "\r\n")
		m := stateLine.FindStringSubmatch(content)
		if m == nil {
			continue
		}
		if i+1 < len(lines) && continuesValue(lines[i+1]) {
			return header, false
		}
		lines[i] = "state: " + state + m[2] + line[len(content):]
		return strings.Join(lines, ""), true
	}
	return header, false
}

// continuesValue reports whether line is an indented continuation of the
// previous key's value.
func continuesValue(line string) bool {
	if line == "" || (line[0] != ' ' && line[0] != '\t') {
		return false
	}
	trimmed := strings.TrimSpace(line)
	return trimmed != "" && !strings.HasPrefix(trimmed, "#")
}

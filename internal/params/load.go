package params

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"

	glazeerrors "github.com/alexisbeaulieu97/glaze/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// Load reads a parameter file from disk. Every field must be present;
// unknown keys are rejected. Values are not validated; call Validate or let
// the generator do it.
func Load(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Set{}, glazeerrors.NewParseError(path, 0, err)
	}
	return Parse(path, data)
}

// Parse decodes a parameter document. path is used for error reporting only.
func Parse(path string, data []byte) (Set, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Set{}, glazeerrors.NewParseError(path, extractLine(err), err)
	}
	if err := requireAllKeys(path, &doc); err != nil {
		return Set{}, err
	}

	var set Set
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&set); err != nil && !errors.Is(err, io.EOF) {
		return Set{}, glazeerrors.NewParseError(path, extractLine(err), err)
	}

	return set, nil
}

func requireAllKeys(path string, doc *yaml.Node) error {
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return glazeerrors.NewParseError(path, 0, errors.New("empty parameter document"))
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return glazeerrors.NewParseError(path, root.Line, errors.New("parameter document must be a mapping"))
	}

	present := make(map[string]bool, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		present[root.Content[i].Value] = true
	}
	for _, f := range fields {
		if !present[f.Name] {
			return glazeerrors.NewParseError(path, root.Line, fmt.Errorf("missing parameter %q", f.Name))
		}
	}
	return nil
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	line, convErr := strconv.Atoi(matches[1])
	if convErr != nil {
		return 0
	}
	return line
}

// Marshal renders the set as a YAML parameter document.
func (s Set) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}

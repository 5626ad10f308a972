// Package hostsfile reads monitored host lists from YAML files and user input.
package hostsfile

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

var ErrEmpty = errors.New("hosts file lists no hosts")

type document struct {
	Hosts []string `yaml:"hosts"`
}

// Load reads a file of the form
//
//	hosts:
//	  - 192.168.1.1
//	  - printer.local
//
// Blank and duplicate entries are dropped; order is kept.
func Load(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Decode(raw)
}

func Decode(raw []byte) ([]string, error) {
	var doc document

	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode hosts: %w", err)
	}

	hosts := Normalize(doc.Hosts)
	if len(hosts) == 0 {
		return nil, ErrEmpty
	}

	return hosts, nil
}

// Parse splits free-form input on commas and whitespace.
func Parse(input string) []string {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})

	return Normalize(fields)
}

// Normalize trims entries and drops blanks and repeats.
func Normalize(hosts []string) []string {
	out := make([]string, 0, len(hosts))

	for _, h := range hosts {
		h = strings.TrimSpace(h)
		if h == "" || slices.Contains(out, h) {
			continue
		}

		out = append(out, h)
	}

	return out
}

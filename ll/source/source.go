/*
Package source reads grammars from textual sources.

Two formats are supported. The text format has one rule per line:

    # expression grammar
    E -> T X
    X -> + T X | ε
    T -> id | ( E )

Symbols are separated by white space, alternatives by '|'. A body consisting
of 'ε' only, or an empty alternative, is the empty production. Blank lines
and lines starting with '#' are ignored. Rules for a non-terminal may be
spread over several lines; the head of the first rule is the start symbol.

The YAML format is a mapping from non-terminals to alternatives, given either
as a single string or as a sequence of strings:

    E: T X
    X: [ "+ T X", "ε" ]
    T: id | ( E )

Key order is preserved, i.e. the first key is the start symbol.

Malformed lines or entries do not stop reading. They are skipped and
reported as diagnostics.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package source

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/gollo/ll"
	"github.com/npillmayer/schuko/tracing"
	"gopkg.in/yaml.v3"
)

// tracer traces with key 'gollo.source'.
func tracer() tracing.Trace {
	return tracing.Select("gollo.source")
}

// ErrFormat is returned for sources which cannot be read at all, e.g.
// invalid YAML.
var ErrFormat = errors.New("malformed grammar source")

// Diagnostic reports a line of a grammar source which has been skipped.
type Diagnostic struct {
	Line int    // line number, starting at 1
	Text string // offending line or entry
	Msg  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: %s: %q", d.Line, d.Msg, d.Text)
}

type collector struct {
	rules []ll.RawRule
	diags []Diagnostic
}

func (c *collector) skip(line int, text, msg string) {
	d := Diagnostic{Line: line, Text: text, Msg: msg}
	tracer().Infof("skipping %s", d)
	c.diags = append(c.diags, d)
}

func (c *collector) add(lhs string, alternatives []string) {
	rule := ll.RawRule{LHS: lhs}
	for _, alt := range alternatives {
		rule.Bodies = append(rule.Bodies, strings.Fields(alt))
	}
	c.rules = append(c.rules, rule)
}

func (c *collector) grammar(name string) (*ll.Grammar, []Diagnostic, error) {
	g, err := ll.Ingest(name, c.rules)
	if err != nil {
		return nil, c.diags, err
	}
	tracer().Infof("grammar %q read: %d rules, %d lines skipped", name, g.Size(), len(c.diags))
	return g, c.diags, nil
}

// Read reads a grammar in text format.
//
// Lines without a '->' or with an empty rule head are skipped and reported
// as diagnostics. Read returns an error wrapping ll.ErrEmptyGrammar if no
// rule could be read.
func Read(name string, r io.Reader) (*ll.Grammar, []Diagnostic, error) {
	c := &collector{}
	sc := bufio.NewScanner(r)
	lineno := 0
	for sc.Scan() {
		lineno++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "->", 2)
		if len(parts) < 2 {
			c.skip(lineno, line, "missing '->'")
			continue
		}
		lhs := strings.TrimSpace(parts[0])
		if lhs == "" || len(strings.Fields(lhs)) > 1 {
			c.skip(lineno, line, "rule head must be a single symbol")
			continue
		}
		c.add(lhs, strings.Split(parts[1], "|"))
	}
	if err := sc.Err(); err != nil {
		return nil, c.diags, fmt.Errorf("reading grammar %q: %w", name, err)
	}
	return c.grammar(name)
}

// ReadString is a convenience function to read a grammar in text format
// from a string.
func ReadString(name, text string) (*ll.Grammar, []Diagnostic, error) {
	return Read(name, strings.NewReader(text))
}

// ReadYAML reads a grammar in YAML format.
//
// Entries with non-scalar keys or with values which are neither strings nor
// sequences of strings are skipped and reported as diagnostics.
func ReadYAML(name string, r io.Reader) (*ll.Grammar, []Diagnostic, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
		return nil, nil, fmt.Errorf("%w: grammar %q: %v", ErrFormat, name, err)
	}
	c := &collector{}
	if len(doc.Content) == 0 {
		return c.grammar(name)
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, nil, fmt.Errorf("%w: grammar %q: expected a mapping of rules", ErrFormat, name)
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		if key.Kind != yaml.ScalarNode || strings.TrimSpace(key.Value) == "" {
			c.skip(key.Line, key.Value, "rule head must be a single symbol")
			continue
		}
		lhs := strings.TrimSpace(key.Value)
		switch val.Kind {
		case yaml.ScalarNode:
			c.add(lhs, strings.Split(val.Value, "|"))
		case yaml.SequenceNode:
			var alts []string
			ok := true
			for _, item := range val.Content {
				if item.Kind != yaml.ScalarNode {
					ok = false
					break
				}
				alts = append(alts, item.Value)
			}
			if !ok || len(alts) == 0 {
				c.skip(val.Line, lhs, "alternatives must be strings")
				continue
			}
			c.add(lhs, alts)
		default:
			c.skip(val.Line, lhs, "alternatives must be strings")
		}
	}
	return c.grammar(name)
}

// ReadFile reads a grammar from a file. Files with extension ".yaml" or
// ".yml" are read in YAML format, all others in text format. The grammar is
// named after the file.
func ReadFile(path string) (*ll.Grammar, []Diagnostic, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	ext := filepath.Ext(path)
	name := strings.TrimSuffix(filepath.Base(path), ext)
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return ReadYAML(name, f)
	}
	return Read(name, f)
}

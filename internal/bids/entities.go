// Package bids decomposes BIDS-style file paths into their key-value entities.
package bids

import (
	"regexp"
	"strconv"
)

// Kind is the value type of an entity.
type Kind int

const (
	KindString Kind = iota
	KindInt
)

// Entity is one parsed key-value pair from a path.
type Entity struct {
	Name  string
	Value string
	Kind  Kind
}

// JSONValue returns the value typed for JSON output: integer entities become
// numbers, everything else stays a string.
func (e Entity) JSONValue() any {
	if e.Kind == KindInt {
		if n, err := strconv.Atoi(e.Value); err == nil {
			return n
		}
	}
	return e.Value
}

// Entities is an ordered list of parsed entities, in grammar order.
type Entities []Entity

// Get returns the value of the named entity.
func (es Entities) Get(name string) (string, bool) {
	for _, e := range es {
		if e.Name == name {
			return e.Value, true
		}
	}
	return "", false
}

// Lookup returns the named entity.
func (es Entities) Lookup(name string) (Entity, bool) {
	for _, e := range es {
		if e.Name == name {
			return e, true
		}
	}
	return Entity{}, false
}

type rule struct {
	name string
	re   *regexp.Regexp
	kind Kind
}

// Separators: a key-value entity must follow a path separator or an underscore.
// The subject entity must start a path component.
const sep = `[_/\\]`

func kv(name, key string) rule {
	return rule{name: name, re: regexp.MustCompile(sep + key + `-([a-zA-Z0-9]+)`)}
}

func kvInt(name, key string) rule {
	return rule{name: name, re: regexp.MustCompile(sep + key + `-(\d+)`), kind: KindInt}
}

var grammar = []rule{
	{name: "subject", re: regexp.MustCompile(`(?:^|[/\\])sub-([a-zA-Z0-9]+)`)},
	kv("session", "ses"),
	kv("task", "task"),
	kv("acquisition", "acq"),
	kv("ceagent", "ce"),
	kv("tracer", "trc"),
	kv("reconstruction", "rec"),
	kv("direction", "dir"),
	kvInt("run", "run"),
	kv("proc", "proc"),
	kv("modality", "mod"),
	kvInt("echo", "echo"),
	kv("flip", "flip"),
	kv("inv", "inv"),
	kv("mt", "mt"),
	kv("part", "part"),
	kv("recording", "recording"),
	kv("space", "space"),
	kv("atlas", "atlas"),
	kv("roi", "roi"),
	kv("label", "label"),
	kv("desc", "desc"),
	kv("from", "from"),
	kv("to", "to"),
	kv("mode", "mode"),
	kv("hemi", "hemi"),
	kv("res", "res"),
	kv("den", "den"),
	{name: "suffix", re: regexp.MustCompile(`(?:^|[_/\\])([a-zA-Z0-9]+)\.[^/\\]+$`)},
	{name: "datatype", re: regexp.MustCompile(`[/\\](anat|beh|dwi|eeg|fmap|func|ieeg|meg|micr|perf|pet)[/\\]`)},
	{name: "extension", re: regexp.MustCompile(`[^./\\](\.[^/\\]+)$`)},
}

// Names lists every entity name in grammar order.
func Names() []string {
	names := make([]string, len(grammar))
	for i, r := range grammar {
		names[i] = r.name
	}
	return names
}

// Parse extracts all entities present in path. The first match of each rule
// wins, so a subject directory and a subject filename prefix agree.
func Parse(path string) Entities {
	var out Entities
	for _, r := range grammar {
		m := r.re.FindStringSubmatch(path)
		if m == nil {
			continue
		}
		out = append(out, Entity{Name: r.name, Value: m[1], Kind: r.kind})
	}
	return out
}

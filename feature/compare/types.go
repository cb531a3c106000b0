package compare

import (
	"fmt"
	"slices"
)

// Mode selects identifier or package lookups.
type Mode string

const (
	ModeID      Mode = "id"
	ModePackage Mode = "package"
)

// Modes lists the accepted modes in CLI order.
var Modes = []Mode{ModeID, ModePackage}

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if !slices.Contains(Modes, m) {
		return "", fmt.Errorf("invalid mode %q (choose from %v)", s, Modes)
	}
	return m, nil
}

// CategoryAll is the wildcard fetch type; its paths carry no category segment.
const CategoryAll = "all"

// Categories lists the accepted fetch types.
var Categories = []string{CategoryAll, "crates.io", "DWF", "Go", "Linux", "OSS-Fuzz", "PyPI"}

// ParseCategory validates a fetch type.
func ParseCategory(s string) (string, error) {
	if !slices.Contains(Categories, s) {
		return "", fmt.Errorf("invalid fetchtype %q (choose from %v)", s, Categories)
	}
	return s, nil
}

// Request is one comparison: a single key looked up on both servers.
type Request struct {
	Mode     Mode
	Category string
	Key      string
}

// Path returns the REST path of the request.
func (r Request) Path() string {
	return BuildPath(r.Mode, r.Category, r.Key)
}

// Result pairs a request with the structural diff of its two answers.
// Old and New keep the decoded bodies for debug rendering.
type Result struct {
	Request Request
	Diff    Diff
	Old     any
	New     any
}

// Options is the immutable run configuration taken from the command line.
type Options struct {
	Mode     Mode
	Category string
	Debug    bool
}

// EndpointConfig holds the base URLs of the servers under comparison.
type EndpointConfig struct {
	// Old is the base URL of the reference server.
	Old string `mapstructure:"old" default:"http://127.0.0.1:1325"`
	// New is the base URL of the server being validated.
	New string `mapstructure:"new" default:"http://127.0.0.1:1326"`
}

// ListConfig says where item lists are read from.
type ListConfig struct {
	// Dir is the local directory holding {mode}/{fetchtype}.txt files.
	Dir string `mapstructure:"dir" default:"integration"`
	// Bucket, when set, reads the same layout from object storage instead.
	Bucket string `mapstructure:"bucket" default:""`
}

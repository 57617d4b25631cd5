package dialect

import "strings"

// Kind identifies what a directive declares.
type Kind int

const (
	InputDataset Kind = iota
	InputFile
	OutputDataset
	IgnoreFlag
)

func (k Kind) String() string {
	switch k {
	case InputDataset:
		return "INPUT_DATASET"
	case InputFile:
		return "INPUT_FILE"
	case OutputDataset:
		return "OUTPUT_DATASET"
	case IgnoreFlag:
		return "RESLIB_IGNORE"
	default:
		return "UNKNOWN"
	}
}

// IsDataset reports whether values of this kind name datasets rather than files.
func (k Kind) IsDataset() bool {
	return k == InputDataset || k == OutputDataset
}

// keywords maps every accepted spelling to its kind. Lookups are upper-cased.
var keywords = map[string]Kind{
	"INPUT":          InputDataset,
	"INPUT_DATASET":  InputDataset,
	"INPUT_FILE":     InputFile,
	"OUTPUT":         OutputDataset,
	"OUTPUT_DATASET": OutputDataset,
	"RESLIB_IGNORE":  IgnoreFlag,
}

// ParseKeyword returns the kind named by word, ignoring case.
func ParseKeyword(word string) (Kind, bool) {
	kind, ok := keywords[strings.ToUpper(strings.TrimSpace(word))]
	return kind, ok
}

// Directive is one declaration found inside a comment.
type Directive struct {
	Kind     Kind
	RawValue string
	// Line is 1-based, relative to the text handed to the matcher.
	Line int
}

// Truthy reports whether an ignore flag value reads as true.
// Only true, yes and 1 count; everything else is false.
func (d Directive) Truthy() bool {
	switch strings.ToLower(strings.TrimSpace(d.RawValue)) {
	case "true", "yes", "1":
		return true
	default:
		return false
	}
}

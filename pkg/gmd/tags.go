package gmd

// Kind is the plist value type marker emitted for a tag.
type Kind string

const (
	KindString  Kind = "s"
	KindInteger Kind = "i"
)

// Tag is one row of the export table. A row either copies Source out of the parsed
// save data or, when Source is empty, always emits Literal.
type Tag struct {
	Key     string
	Source  string
	Literal string
	Kind    Kind
}

// IsLiteral reports whether the row emits a fixed value.
func (t Tag) IsLiteral() bool {
	return t.Source == ""
}

func field(key, source string, kind Kind) Tag {
	return Tag{Key: key, Source: source, Kind: kind}
}

func literal(key, value string) Tag {
	return Tag{Key: key, Literal: value, Kind: KindInteger}
}

// Tags is the ordered GMD export table; row order is the document's field order.
// Only the level name (k2), description (k3) and level string (k4) are string typed.
var Tags = []Tag{
	literal("kCEK", "4"),
	field("k1", "1", KindInteger),
	field("k23", "15", KindInteger),
	field("k2", "2", KindString),
	field("k4", "4", KindString),
	field("k3", "3", KindString),
	literal("k21", "3"),
	field("k16", "5", KindInteger),
	field("k17", "13", KindInteger),
	field("k80", "46", KindInteger),
	field("k81", "47", KindInteger),
	field("k64", "37", KindInteger),
	field("k42", "30", KindInteger),
	field("k45", "35", KindInteger),
	literal("k50", "45"),
	field("k48", "45", KindInteger),
}

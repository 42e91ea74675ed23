package codec

// TimeLayout is the wire format for date/time values: UTC, second precision.
const TimeLayout = "2006-01-02T15:04:05Z"

// Kind classifies a Type.
type Kind uint8

const (
	// KindAny is an opaque value passed through untouched.
	KindAny Kind = iota
	KindString
	KindInt
	KindFloat
	KindBool
	KindTime
	KindEntity
)

var kindNames = [...]string{
	KindAny:    "any",
	KindString: "string",
	KindInt:    "integer",
	KindFloat:  "float",
	KindBool:   "boolean",
	KindTime:   "datetime",
	KindEntity: "entity",
}

// String returns the kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}

	return "unknown"
}

// Type is the expected type of a field: a primitive or a registered entity.
type Type interface {
	Kind() Kind
	Name() string
}

type primitive Kind

func (p primitive) Kind() Kind   { return Kind(p) }
func (p primitive) Name() string { return Kind(p).String() }

// Primitive types.
var (
	AnyType    Type = primitive(KindAny)
	StringType Type = primitive(KindString)
	IntType    Type = primitive(KindInt)
	FloatType  Type = primitive(KindFloat)
	BoolType   Type = primitive(KindBool)
	TimeType   Type = primitive(KindTime)
)

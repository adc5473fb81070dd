package device

// Field identifies a recognized query parameter. The sanitizer dispatches over
// this closed set; unknown names never reach it.
type Field string

const (
	FieldManufacturer Field = "manufacturer"
	FieldName         Field = "name"
	FieldLimit        Field = "limit"
	FieldOffset       Field = "offset"
	FieldIsReleased   Field = "is_released"
)

// QueryFields are the parameters recognized by the device query operation.
var QueryFields = []Field{FieldManufacturer, FieldName, FieldLimit, FieldOffset, FieldIsReleased}

// ManufacturerQueryFields are the parameters recognized by the manufacturer
// query operation.
var ManufacturerQueryFields = []Field{FieldName, FieldLimit, FieldOffset}

// FilterSet is the bounded, typed form of one query's parameters. Every field
// is always usable: nil means "filter not supplied", the numeric fields are
// always in range.
type FilterSet struct {
	Manufacturer *string
	Name         *string
	Limit        int
	Offset       int
	IsReleased   bool
}

const (
	MinLimit      = 1
	MaxLimit      = 100
	DefaultLimit  = 100
	MinOffset     = 0
	DefaultOffset = 0
)

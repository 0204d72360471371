package sqlspec

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ErrUnsupportedValue reports a field value of a type the codec cannot bind.
var ErrUnsupportedValue = errors.New("sqlspec: unsupported value type")

// TimestampLayout is the canonical wire format for timestamp attributes.
const TimestampLayout = "2006-01-02 15:04:05"

// encodeValue normalizes a field value into a statement argument. Nil values
// and nil pointers become SQL NULL; booleans bind as 1/0 to match the legacy
// column encoding; timestamps bind as canonical UTC strings.
func encodeValue(field Field) (any, error) {
	switch v := field.Value.(type) {
	case nil:
		return nil, nil
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case *int64:
		if v == nil {
			return nil, nil
		}
		return *v, nil
	case string:
		return v, nil
	case *string:
		if v == nil {
			return nil, nil
		}
		return *v, nil
	case bool:
		if v {
			return int64(1), nil
		}
		return int64(0), nil
	case decimal.Decimal:
		return v.String(), nil
	case *decimal.Decimal:
		if v == nil {
			return nil, nil
		}
		return v.String(), nil
	case time.Time:
		return v.UTC().Format(TimestampLayout), nil
	case *time.Time:
		if v == nil {
			return nil, nil
		}
		return v.UTC().Format(TimestampLayout), nil
	default:
		return nil, fmt.Errorf("%w: attribute %s (%T)", ErrUnsupportedValue, field.Name, field.Value)
	}
}

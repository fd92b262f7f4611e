package logging

import (
	"context"

	"go.uber.org/zap"
)

// Key string
type Key string

const trackedFields = Key("tracked-fields")

// AddValues creates a new immutable context which includes the new fields.
// A field added with a key that is already tracked replaces the old value.
func AddValues(ctx context.Context, values ...zap.Field) context.Context {
	if len(values) == 0 {
		return ctx
	}

	existing := getFields(ctx)
	fields := make([]zap.Field, 0, len(existing)+len(values))

	for _, field := range existing {
		if !hasKey(values, field.Key) {
			fields = append(fields, field)
		}
	}

	for i, val := range values {
		// a later value in the same call wins
		if hasKey(values[i+1:], val.Key) {
			continue
		}
		fields = append(fields, val)
	}

	return context.WithValue(ctx, trackedFields, fields)
}

// GetValues returns a map of all values stored in the current context
func GetValues(ctx context.Context) map[string]zap.Field {
	fields := getFields(ctx)
	values := make(map[string]zap.Field, len(fields))

	for _, field := range fields {
		values[field.Key] = field
	}

	return values
}

// GetValuesSlice returns a slice of all values stored in the current context
func GetValuesSlice(ctx context.Context) []zap.Field {
	fields := getFields(ctx)
	out := make([]zap.Field, len(fields))
	copy(out, fields)

	return out
}

func getFields(ctx context.Context) []zap.Field {
	if ctx == nil {
		return nil
	}

	if f, ok := ctx.Value(trackedFields).([]zap.Field); ok {
		return f
	}

	return nil
}

func hasKey(fields []zap.Field, key string) bool {
	for _, f := range fields {
		if f.Key == key {
			return true
		}
	}

	return false
}

package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/phrazzld/cityinfo-api/internal/domain"
)

// Supported JSON Patch operations. move and copy are rejected because no
// patchable field can be the source of another.
const (
	patchOpAdd     = "add"
	patchOpReplace = "replace"
	patchOpRemove  = "remove"
	patchOpTest    = "test"
)

// patchableFields is the allow-list of paths a patch document may touch.
var patchableFields = map[string]string{
	"/name":        "name",
	"/description": "description",
}

// patchFromDocument converts a JSON Patch document into a typed patch.
// Operations apply in order, so a later operation sees the effect of an
// earlier one. remove clears the field, which for name fails validation
// later on.
//
// A "test" on a field an earlier operation already set is decided here.
// A "test" on an untouched field becomes a precondition on the stored
// value, checked by the store under the same lock as the write.
func patchFromDocument(ops []PatchOperation) (domain.PointOfInterestPatch, error) {
	if len(ops) == 0 {
		return domain.PointOfInterestPatch{}, invalidPatch("patch", "must contain at least one operation")
	}

	values := map[string]string{}
	expected := map[string]string{}

	for i, op := range ops {
		field, ok := patchableFields[strings.ToLower(op.Path)]
		if !ok {
			return domain.PointOfInterestPatch{}, invalidPatch(
				fmt.Sprintf("patch[%d].path", i),
				fmt.Sprintf("%q is not a patchable path", op.Path),
			)
		}

		switch strings.ToLower(op.Op) {
		case patchOpAdd, patchOpReplace:
			value, err := patchStringValue(op.Value)
			if err != nil {
				return domain.PointOfInterestPatch{}, invalidPatch(fmt.Sprintf("patch[%d].value", i), err.Error())
			}
			values[field] = value
		case patchOpRemove:
			values[field] = ""
		case patchOpTest:
			value, err := patchStringValue(op.Value)
			if err != nil {
				return domain.PointOfInterestPatch{}, invalidPatch(fmt.Sprintf("patch[%d].value", i), err.Error())
			}
			known, set := values[field]
			if !set {
				known, set = expected[field]
			}
			if set && known != value {
				return domain.PointOfInterestPatch{}, invalidPatch(
					fmt.Sprintf("patch[%d]", i),
					fmt.Sprintf("test failed for path %q", op.Path),
				)
			}
			if _, written := values[field]; !written {
				expected[field] = value
			}
		default:
			return domain.PointOfInterestPatch{}, invalidPatch(
				fmt.Sprintf("patch[%d].op", i),
				fmt.Sprintf("%q is not a supported operation", op.Op),
			)
		}
	}

	return domain.PointOfInterestPatch{
		Name:              optional(values, "name"),
		Description:       optional(values, "description"),
		ExpectName:        optional(expected, "name"),
		ExpectDescription: optional(expected, "description"),
	}, nil
}

func optional(m map[string]string, key string) *string {
	v, ok := m[key]
	if !ok {
		return nil
	}
	return &v
}

// patchStringValue decodes an operation value. A JSON null clears the field.
func patchStringValue(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", fmt.Errorf("is required")
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return "", nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("must be a string")
	}
	return s, nil
}

func invalidPatch(field, message string) error {
	return fmt.Errorf("%w: %w", domain.ErrInvalidPatch, domain.NewValidationError(field, message))
}

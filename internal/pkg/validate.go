package pkg

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/simp-lee/forumclient/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateStruct checks a request DTO against its validate tags before any
// HTTP call is made. Failures come back as an APIError with a
// VALIDATION_ERROR-style HTTP code of 400, keyed by JSON field names, so
// client-side rejections look like backend rejections to callers.
func ValidateStruct(obj any) *domain.APIError {
	if err := validate.Struct(obj); err != nil {
		var ve validator.ValidationErrors
		if !errors.As(err, &ve) {
			return domain.NewAPIError(domain.CodeUnknown, err.Error())
		}

		jsonTags := buildJSONTagMap(obj)
		parts := make([]string, 0, len(ve))
		for _, fe := range ve {
			name := fe.Field()
			if tag, ok := jsonTags[fe.StructField()]; ok {
				name = tag
			} else {
				name = strings.ToLower(name)
			}
			msg := fe.Tag()
			if fe.Param() != "" {
				msg += "=" + fe.Param()
			}
			parts = append(parts, name+": "+msg)
		}
		return domain.NewAPIError(domain.HTTPErrorCode(400), "validation error: "+strings.Join(parts, ", "))
	}
	return nil
}

// buildJSONTagMap returns a map from struct field name to its JSON tag name.
// If obj is nil or not a struct (pointer), it returns an empty map.
func buildJSONTagMap(obj any) map[string]string {
	if obj == nil {
		return nil
	}
	t := reflect.TypeOf(obj)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}
	m := make(map[string]string, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get("json")
		if name := parseJSONTagName(tag); name != "" {
			m[f.Name] = name
		}
	}
	return m
}

// parseJSONTagName extracts the field name from a JSON struct tag value.
func parseJSONTagName(tag string) string {
	if tag == "" || tag == "-" {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" || name == "-" {
		return ""
	}
	return name
}

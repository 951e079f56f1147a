package field

import (
	"reflect"
	"strconv"
	"strings"
)

// JSONName returns the name part of the json tag.
func JSONName(tag reflect.StructTag) string {
	// json:"tag,hoge"
	return strings.TrimSpace(strings.Split(tag.Get(jsonTag), ",")[0])
}

// ShouldSkip reports whether tags hide a field from the schema.
func ShouldSkip(tag reflect.StructTag) bool {
	if strings.EqualFold(tag.Get(swaggerIgnoreTag), "true") {
		return true
	}
	// json:"-," names a field "-"
	return strings.TrimSpace(tag.Get(jsonTag)) == "-"
}

// IsRequired determines if the field is required.
func IsRequired(tag reflect.StructTag, requiredByDefault bool) bool {
	for _, key := range []string{bindingTag, validateTag} {
		value := tag.Get(key)
		if value == "" {
			continue
		}
		for _, val := range strings.Split(value, ",") {
			switch val {
			case requiredLabel:
				return true
			case optionalLabel:
				return false
			}
		}
	}

	for _, val := range strings.Split(tag.Get(jsonTag), ",") {
		if val == omitEmptyLabel {
			return false
		}
	}

	return requiredByDefault
}

// SwaggerType returns the comma separated swaggertype override, if any.
//
//	swaggertype:"array,number" -> ["array", "number"]
func SwaggerType(tag reflect.StructTag) []string {
	value := strings.TrimSpace(tag.Get(swaggerTypeTag))
	if value == "" {
		return nil
	}
	return strings.Split(value, ",")
}

// TagValues lists every key:"value" pair of a struct tag in order of
// appearance. Malformed trailing text is ignored.
func TagValues(tag reflect.StructTag) map[string]string {
	values := make(map[string]string)

	rest := string(tag)
	for rest != "" {
		i := 0
		for i < len(rest) && rest[i] == ' ' {
			i++
		}
		rest = rest[i:]
		if rest == "" {
			break
		}

		i = 0
		for i < len(rest) && rest[i] > ' ' && rest[i] != ':' && rest[i] != '"' && rest[i] != 0x7f {
			i++
		}
		if i == 0 || i+1 >= len(rest) || rest[i] != ':' || rest[i+1] != '"' {
			break
		}
		key := rest[:i]
		rest = rest[i+1:]

		i = 1
		for i < len(rest) && rest[i] != '"' {
			if rest[i] == '\\' {
				i++
			}
			i++
		}
		if i >= len(rest) {
			break
		}
		quoted := rest[:i+1]
		rest = rest[i+1:]

		value, err := strconv.Unquote(quoted)
		if err != nil {
			break
		}
		if _, seen := values[key]; !seen {
			values[key] = value
		}
	}

	return values
}

package cache

import (
	"fmt"
	"strings"
)

// KeySeparator defines the delimiter used between cache key segments.
const KeySeparator = "::"

// DefaultNamespace prefixes every key produced by NewDefaultKeySerializer.
const DefaultNamespace = "zipcache"

type keySerializer struct {
	namespace string
}

// NewDefaultKeySerializer returns a serializer using DefaultNamespace.
func NewDefaultKeySerializer() KeySerializer {
	return NewKeySerializer(DefaultNamespace)
}

// NewKeySerializer returns a serializer that prefixes keys with namespace.
// An empty namespace produces unprefixed keys.
func NewKeySerializer(namespace string) KeySerializer {
	return &keySerializer{namespace: strings.Trim(namespace, ":")}
}

// SerializeKey joins namespace, method and args, e.g. "zipcache::Get::01001000".
// Zip codes are opaque, so string args are used verbatim.
func (s *keySerializer) SerializeKey(method string, args ...any) string {
	parts := make([]string, 0, len(args)+2)
	if s.namespace != "" {
		parts = append(parts, s.namespace)
	}
	parts = append(parts, method)

	for _, arg := range args {
		parts = append(parts, serializeArg(arg))
	}

	return strings.Join(parts, KeySeparator)
}

func serializeArg(v any) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}

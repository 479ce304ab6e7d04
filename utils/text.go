package utils

import (
	"fmt"
	"strings"

	"github.com/elliotchance/orderedmap/v2"
)

// PrettyParams converts the given parameters to a readable string, keeping insertion order.
func PrettyParams(params *orderedmap.OrderedMap[string, any]) string {
	if params == nil || params.Len() == 0 {
		return "[]"
	}

	var sb strings.Builder
	sb.WriteByte('[')
	for el := params.Front(); el != nil; el = el.Next() {
		if el != params.Front() {
			sb.WriteString(", ")
		}
		sb.WriteString(el.Key)
		sb.WriteByte('=')
		sb.WriteString(fmt.Sprint(el.Value))
	}
	sb.WriteByte(']')
	return sb.String()
}

package catalog

import (
	"strconv"
	"strings"
)

// flexNumber decodes a JSON number that the source data may also deliver as
// a quoted string, a null or garbage. Anything unparseable degrades to zero
// instead of failing the whole document.
type flexNumber float64

func (f *flexNumber) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*f = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	if s == "" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexNumber(v)
	return nil
}

package util

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// PrintPrettyJSON writes v to w as indented JSON. HTML characters are not escaped
// so URLs stay copy-pasteable.
func PrintPrettyJSON(w io.Writer, v any) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, strings.TrimSuffix(buf.String(), "\n"))
	return err
}

package apierror

import (
	"bytes"
	"encoding/json"
)

// marshalNoEscape encodes v like json.Marshal but leaves <, > and & as-is
// and drops the trailing newline added by json.Encoder.
func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// appendMembers splices the members of the JSON object ext into the JSON
// object base. base must be a compact object produced by the encoder.
func appendMembers(base, ext []byte) ([]byte, error) {
	ext = bytes.TrimSpace(ext)
	if len(ext) < 2 || ext[0] != '{' || ext[len(ext)-1] != '}' {
		return nil, ErrExtensionNotObject
	}

	inner := bytes.TrimSpace(ext[1 : len(ext)-1])
	if len(inner) == 0 {
		return base, nil
	}

	out := make([]byte, 0, len(base)+len(inner)+1)
	out = append(out, base[:len(base)-1]...)
	if len(base) > 2 {
		out = append(out, ',')
	}
	out = append(out, inner...)
	out = append(out, '}')
	return out, nil
}

package bind

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// valuePath returns the reference tokens of the innermost value in body
// whose bytes cover offset, as reported by json.UnmarshalTypeError.
// encoding/json reports an offset just past the start of a mismatched
// object or array, or at the end of a mismatched literal.
func valuePath(body []byte, offset int64) ([]string, bool) {
	if len(body) == 0 || offset <= 0 {
		return nil, false
	}
	w := &pathWalker{dec: json.NewDecoder(bytes.NewReader(body)), offset: offset}
	if err := w.value(nil); err != nil && !w.found {
		return nil, false
	}
	return w.path, w.found
}

type pathWalker struct {
	dec    *json.Decoder
	offset int64
	path   []string
	found  bool
}

func (w *pathWalker) value(path []string) error {
	start := w.dec.InputOffset()
	tok, err := w.dec.Token()
	if err != nil {
		return err
	}

	switch tok {
	case json.Delim('{'):
		for w.dec.More() {
			key, err := w.dec.Token()
			if err != nil {
				return err
			}
			name, _ := key.(string)
			if err := w.value(append(path[:len(path):len(path)], name)); err != nil {
				return err
			}
		}
		if _, err := w.dec.Token(); err != nil {
			return err
		}
	case json.Delim('['):
		for i := 0; w.dec.More(); i++ {
			if err := w.value(append(path[:len(path):len(path)], strconv.Itoa(i))); err != nil {
				return err
			}
		}
		if _, err := w.dec.Token(); err != nil {
			return err
		}
	}

	// children are visited first, so the first match is the innermost
	if !w.found && start < w.offset && w.offset <= w.dec.InputOffset() {
		w.path = path
		w.found = true
	}
	return nil
}

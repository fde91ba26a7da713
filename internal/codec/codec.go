// Package codec turns a valentine record into a URL-embeddable token and
// back. The pipeline is JSON, then component escaping (so any UTF-8 text
// becomes plain ASCII), then standard base64. Tokens minted by the browser
// pages (JSON.stringify, encodeURIComponent, btoa) decode unchanged, and
// tokens minted here carry the same JSON text the browser would produce
// for the same record.
package codec

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"valentine/internal/model"
	"valentine/internal/theme"
)

var (
	// ErrDecode reports a token that could not be turned back into JSON.
	ErrDecode = errors.New("malformed valentine token")
	// ErrValidation reports well-formed data that is not a valid record.
	ErrValidation = errors.New("invalid valentine record")
)

// Encode serializes a record into a token. Text that is not valid UTF-8 is
// rejected rather than silently replaced.
func Encode(rec model.Record) (string, error) {
	if err := checkUTF8(rec); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(rec); err != nil {
		return "", fmt.Errorf("failed to marshal record: %w", err)
	}
	payload := unescapeLineSeparators(bytes.TrimRight(buf.Bytes(), "\n"))

	escaped := EscapeComponent(string(payload))
	return base64.StdEncoding.EncodeToString([]byte(escaped)), nil
}

// Decode reverses Encode and validates the result against the catalog.
// Failures wrap ErrDecode or ErrValidation; no partial record is returned.
func Decode(token string, cat *theme.Catalog) (rec model.Record, err error) {
	defer func() {
		if r := recover(); r != nil {
			rec = model.Record{}
			err = fmt.Errorf("%w: %v", ErrDecode, r)
		}
	}()

	token = normalizeToken(token)
	if token == "" {
		return model.Record{}, fmt.Errorf("%w: empty token", ErrDecode)
	}

	raw, err := decodeBase64(token)
	if err != nil {
		return model.Record{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	payload, err := UnescapeComponent(string(raw))
	if err != nil {
		return model.Record{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	decoded, err := unmarshalRecord([]byte(payload))
	if err != nil {
		return model.Record{}, err
	}

	if err := Validate(decoded, cat); err != nil {
		return model.Record{}, err
	}
	return decoded, nil
}

// Validate checks the record invariants: required fields are non-blank,
// all text is valid UTF-8 and the style exists in the catalog.
func Validate(rec model.Record, cat *theme.Catalog) error {
	required := []struct {
		field string
		value string
	}{
		{model.FieldFrom, rec.From},
		{model.FieldTo, rec.To},
		{model.FieldQuestion, rec.Question},
		{model.FieldStyle, rec.Style},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%w: %s is required", ErrValidation, r.field)
		}
	}
	if err := checkUTF8(rec); err != nil {
		return err
	}
	if cat == nil {
		return fmt.Errorf("%w: no theme catalog", ErrValidation)
	}
	if _, ok := cat.Lookup(rec.Style); !ok {
		return fmt.Errorf("%w: unknown style %q", ErrValidation, rec.Style)
	}
	return nil
}

// normalizeToken undoes the damage query parsing does to a raw base64
// value: '+' arrives as a space and stray whitespace may surround it.
func normalizeToken(token string) string {
	token = strings.TrimSpace(token)
	return strings.ReplaceAll(token, " ", "+")
}

func decodeBase64(token string) ([]byte, error) {
	if strings.ContainsAny(token, "\r\n\t") {
		token = strings.Map(func(r rune) rune {
			switch r {
			case '\r', '\n', '\t':
				return -1
			}
			return r
		}, token)
	}
	if len(token)%4 != 0 {
		// atob tolerates missing padding, so we do too.
		return base64.RawStdEncoding.DecodeString(strings.TrimRight(token, "="))
	}
	return base64.StdEncoding.DecodeString(token)
}

// unmarshalRecord reads the payload object with exact, case-sensitive keys.
// encoding/json folds key case, which would let {"FROM": ...} through even
// though the browser pages only ever read "from".
func unmarshalRecord(payload []byte) (model.Record, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(payload, &obj); err != nil {
		return model.Record{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	var rec model.Record
	fields := []struct {
		key string
		dst *string
	}{
		{model.FieldFrom, &rec.From},
		{model.FieldTo, &rec.To},
		{model.FieldQuestion, &rec.Question},
		{model.FieldStyle, &rec.Style},
		{model.FieldYesText, &rec.YesText},
	}
	for _, f := range fields {
		raw, ok := obj[f.key]
		if !ok {
			continue
		}
		// null reads as absent
		if err := json.Unmarshal(raw, f.dst); err != nil {
			return model.Record{}, fmt.Errorf("%w: field %s: %v", ErrDecode, f.key, err)
		}
	}
	return rec, nil
}

func checkUTF8(rec model.Record) error {
	fields := []struct {
		field string
		value string
	}{
		{model.FieldFrom, rec.From},
		{model.FieldTo, rec.To},
		{model.FieldQuestion, rec.Question},
		{model.FieldStyle, rec.Style},
		{model.FieldYesText, rec.YesText},
	}
	for _, f := range fields {
		if !utf8.ValidString(f.value) {
			return fmt.Errorf("%w: %s is not valid UTF-8", ErrValidation, f.field)
		}
	}
	return nil
}

// unescapeLineSeparators writes U+2028 and U+2029 raw, the way
// JSON.stringify does. encoding/json always escapes them. Escape pairs are
// skipped whole so an escaped backslash followed by "u2028" stays put.
func unescapeLineSeparators(payload []byte) []byte {
	if !bytes.Contains(payload, []byte(`\u202`)) {
		return payload
	}
	out := make([]byte, 0, len(payload))
	for i := 0; i < len(payload); i++ {
		c := payload[i]
		if c != '\\' || i+1 >= len(payload) {
			out = append(out, c)
			continue
		}
		if seq := payload[i+1:]; len(seq) >= 5 && seq[0] == 'u' {
			switch string(seq[1:5]) {
			case "2028":
				out = utf8.AppendRune(out, '\u2028')
				i += 5
				continue
			case "2029":
				out = utf8.AppendRune(out, '\u2029')
				i += 5
				continue
			}
		}
		out = append(out, c, payload[i+1])
		i++
	}
	return out
}

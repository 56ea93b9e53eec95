package diagnostics

import "golang.org/x/text/encoding/traditionalchinese"

// SanitizeLegacyText converts a Big5-encoded byte string field (the kind a
// component may carry when it wraps data loaded from a pre-Unicode legacy
// source) into UTF-8 for diagnostic display. Pure ASCII passes through
// unchanged; only multi-byte sequences are decoded, and a decode failure
// falls back to returning the raw bytes unchanged as a string rather than
// discarding the field.
func SanitizeLegacyText(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	allASCII := true
	for _, b := range raw {
		if b >= 0x80 {
			allASCII = false
			break
		}
	}
	if allASCII {
		return string(raw)
	}
	decoded, err := traditionalchinese.Big5.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(decoded)
}

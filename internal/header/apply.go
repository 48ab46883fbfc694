package header

// Apply splices the formatted header into the body. An existing header is
// replaced in place; otherwise the new header is prepended followed by a
// single blank line. The operation is idempotent and preserves every byte
// outside the header range.
//
// Bodies over MaxFileSize are rejected with a *SizeError.
func Apply(body string, d *Doc, lang Language) (string, error) {
	if len(body) > MaxFileSize {
		return "", &SizeError{Size: int64(len(body))}
	}

	formatted := Format(d, lang)

	if ext, ok := Locate(body, lang); ok {
		return body[:ext.Start] + formatted + body[ext.End:], nil
	}
	return formatted + "\n" + body, nil
}

package resp

import (
	"strings"
	"unicode"
)

// MaxQuotePasses bounds the quoted-span scan. Malformed input, such as
// an unterminated quote, must fail with ErrParsingLimit instead of
// spinning; this is a correctness requirement, not a tuning knob.
const MaxQuotePasses = 1024

// Placeholder bytes used while a command line is being tokenized. Both
// are non-printable so they cannot collide with typed input.
const (
	spaceMark  = '\x1f' // masks spaces inside a quoted span
	escapeMark = '\x02' // masks a backslash-escaped quote character
)

// Tokenize splits one command line into argument tokens.
//
// Double- and single-quoted spans keep their internal spaces and may
// contain backslash-escaped quote characters. Whichever quote style
// appears first in the line is the only style processed for that call;
// interleaved mixed styles are not supported. A token that is just an
// empty pair of quotes yields an empty-string argument, which is
// preserved in the output.
func Tokenize(command string) ([]string, error) {
	s := normalize(command)

	if !hasLetter(s) {
		return nil, ErrEmptyCommand
	}

	quote, found := activeQuote(s)
	if found {
		// Hide escaped quotes so they cannot be read as a closing quote.
		s = strings.ReplaceAll(s, `\`+string(quote), string(escapeMark))

		var err error
		s, err = maskQuotedSpans(s, quote)
		if err != nil {
			return nil, err
		}

		for strings.Contains(s, "  ") {
			s = strings.ReplaceAll(s, "  ", " ")
		}

		s = strings.ReplaceAll(s, string(escapeMark), `\`+string(quote))
	}

	s = strings.Trim(s, " ")
	raw := strings.Split(s, " ")

	tokens := make([]string, 0, len(raw))
	for _, tok := range raw {
		tok = strings.ReplaceAll(tok, string(spaceMark), " ")
		if found && len(tok) >= 2 && tok[0] == quote && tok[len(tok)-1] == quote {
			tok = tok[1 : len(tok)-1]
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

// normalize prepares a raw command line for tokenization: stray NUL
// bytes become spaces, literal CR-LF pairs become the two-character
// escape so they cannot be mistaken for frame-internal line breaks, and
// leading/trailing line noise is stripped.
func normalize(s string) string {
	s = strings.ReplaceAll(s, "\x00", " ")
	s = strings.Trim(s, "\r\n\t")
	return strings.ReplaceAll(s, "\r\n", `\n`)
}

// hasLetter reports whether s contains at least one alphabetic rune.
// Purely symbolic input is rejected before any I/O happens.
func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// activeQuote picks the quote style for this call: whichever of ` "` or
// ` '` occurs first in the line.
func activeQuote(s string) (byte, bool) {
	d := strings.Index(s, ` "`)
	q := strings.Index(s, ` '`)
	switch {
	case d < 0 && q < 0:
		return 0, false
	case q < 0 || (d >= 0 && d < q):
		return '"', true
	default:
		return '\'', true
	}
}

// maskQuotedSpans replaces spaces inside each quoted span with
// spaceMark so the span survives the whitespace split intact. The scan
// is bounded by MaxQuotePasses: an unterminated quote makes no progress
// and drains the budget instead of looping forever.
func maskQuotedSpans(s string, quote byte) (string, error) {
	pos := 0
	for passes := 0; ; passes++ {
		if passes >= MaxQuotePasses {
			return "", ErrParsingLimit
		}

		open := strings.IndexByte(s[pos:], quote)
		if open < 0 {
			return s, nil
		}
		open += pos

		length := strings.IndexByte(s[open+1:], quote)
		if length < 0 {
			// Unterminated quote: nothing to advance past.
			continue
		}
		end := open + 1 + length

		span := s[open+1 : end]
		if strings.IndexByte(span, ' ') >= 0 {
			span = strings.ReplaceAll(span, " ", string(spaceMark))
			s = s[:open+1] + span + s[end:]
		}
		pos = end + 1
	}
}

package source

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// MaxLineLength caps a single line in bytes; anything beyond is discarded.
const MaxLineLength = 1 << 20

const ctxCheckEvery = 4096

// decoder honours a UTF-8 or UTF-16 byte order mark, otherwise reads UTF-8.
// Invalid byte sequences are dropped rather than failing the batch.
func decoder() transform.Transformer {
	return transform.Chain(
		unicode.BOMOverride(unicode.UTF8.NewDecoder()),
		runes.Remove(runes.Predicate(func(r rune) bool { return r == utf8.RuneError })),
	)
}

// ReadLines reads every line of r with best-effort decoding. Line endings
// (\n or \r\n) are removed. Over-long lines are cut at MaxLineLength.
// Only I/O errors and context cancellation are returned.
func ReadLines(ctx context.Context, r io.Reader) ([]string, error) {
	br := bufio.NewReaderSize(transform.NewReader(r, decoder()), 64*1024)

	lines := []string{}
	var sb strings.Builder
	for {
		if len(lines)%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		sb.Reset()
		eof, err := readLine(br, &sb)
		if err != nil {
			return nil, fmt.Errorf("read lines: %w", err)
		}
		if eof && sb.Len() == 0 {
			return lines, nil
		}
		lines = append(lines, strings.TrimSuffix(sb.String(), "\r"))
		if eof {
			return lines, nil
		}
	}
}

// readLine appends one line to sb, keeping at most MaxLineLength bytes.
func readLine(br *bufio.Reader, sb *strings.Builder) (eof bool, err error) {
	for {
		frag, isPrefix, err := br.ReadLine()
		if errors.Is(err, io.EOF) {
			return true, nil
		}
		if err != nil {
			return false, err
		}
		if room := MaxLineLength - sb.Len(); room > 0 {
			if len(frag) > room {
				frag = frag[:room]
			}
			sb.Write(frag)
		}
		if !isPrefix {
			return false, nil
		}
	}
}

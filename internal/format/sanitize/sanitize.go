// Package sanitize removes terminal control sequences from child process
// output before it is drawn.
package sanitize

import "regexp"

// csi matches ESC [ followed by parameter bytes, intermediate bytes and a
// single final byte.
var csi = regexp.MustCompile("\x1b\\[[\x30-\x3f]*[\x20-\x2f]*[\x40-\x7e]")

// Strip returns text with every CSI escape sequence removed. All other
// characters, line breaks included, are kept as-is. Removal repeats until no
// sequence is left, so a sequence spliced together by an earlier removal
// ("\x1b[" + "\x1b[0m" + "m") is removed too and Strip(Strip(s)) == Strip(s).
func Strip(text string) string {
	for text != "" {
		next := csi.ReplaceAllString(text, "")
		if next == text {
			break
		}
		text = next
	}
	return text
}

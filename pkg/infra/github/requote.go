package github

import "strings"

const upperhex = "0123456789ABCDEF"

// requote percent-encodes bytes that may not appear in a request line
// (spaces, control bytes, non-ASCII) and leaves reserved characters such as
// '&', '#', '=' and '+' as they are, so a caller-supplied query keeps its
// meaning. Existing %XX escapes are preserved; a stray '%' becomes %25.
func requote(target string) string {
	var b strings.Builder
	b.Grow(len(target))

	for i := 0; i < len(target); i++ {
		c := target[i]
		switch {
		case c == '%':
			if i+2 < len(target) && isHex(target[i+1]) && isHex(target[i+2]) {
				b.WriteByte(c)
			} else {
				b.WriteString("%25")
			}
		case isURLSafe(c):
			b.WriteByte(c)
		default:
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&0x0f])
		}
	}

	return b.String()
}

func isURLSafe(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-._~!#$&'()*+,/:;=?@[]", c) >= 0
}

func isHex(c byte) bool {
	switch {
	case '0' <= c && c <= '9', 'a' <= c && c <= 'f', 'A' <= c && c <= 'F':
		return true
	}
	return false
}

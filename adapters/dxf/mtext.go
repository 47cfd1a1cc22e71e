package dxf

import "strings"

// StripMTextCodes removes MTEXT inline formatting from raw text: brace
// groups, \P paragraph breaks, \f font and similar argumented codes
// terminated by a semicolon, and escaped literals.
func StripMTextCodes(raw string) string {
	var out strings.Builder
	i := 0
	for i < len(raw) {
		c := raw[i]
		switch c {
		case '{', '}':
			i++
		case '\\':
			if i+1 >= len(raw) {
				i++
				continue
			}
			next := raw[i+1]
			switch next {
			case '\\', '{', '}':
				out.WriteByte(next)
				i += 2
			case 'P', 'p', 'X':
				out.WriteByte(' ')
				i += 2
			case '~':
				out.WriteByte(' ')
				i += 2
			case 'f', 'F', 'H', 'h', 'C', 'c', 'T', 'Q', 'W', 'A':
				// argumented code, runs to the next semicolon
				end := strings.IndexByte(raw[i:], ';')
				if end < 0 {
					i = len(raw)
				} else {
					i += end + 1
				}
			default:
				i += 2
			}
		default:
			out.WriteByte(c)
			i++
		}
	}
	return strings.Join(strings.Fields(out.String()), " ")
}

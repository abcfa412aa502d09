package primitive

import (
	"io"
	"strconv"
)

// Str is an immutable length-tracked byte string.
//
// A Str is only ever produced by a constructor; no operation mutates one in
// place. Concat allocates a fresh result and leaves its operands untouched.
type Str struct {
	content []byte
}

// EmptyStr creates the empty string.
func EmptyStr() *Str {
	return &Str{}
}

// Concat creates a new string holding a's content followed by b's.
// Neither operand is modified.
func Concat(a, b *Str) *Str {
	content := make([]byte, 0, len(a.content)+len(b.content))
	content = append(content, a.content...)
	content = append(content, b.content...)
	return &Str{content: content}
}

// StrFromInt creates the base-10 text of v: no leading zeros, leading '-'
// for negative values.
func StrFromInt(v int64) *Str {
	return &Str{content: []byte(strconv.FormatInt(v, 10))}
}

// StrFromFloat creates fixed-point text of v with six fractional digits,
// matching C's %f. The precision is inherited from the original runtime and
// kept for output reproducibility.
func StrFromFloat(v float64) *Str {
	return &Str{content: strconv.AppendFloat(nil, v, 'f', 6, 64)}
}

// Len returns the byte length.
func (s *Str) Len() int {
	return len(s.content)
}

// String returns the content as a Go string.
func (s *Str) String() string {
	return string(s.content)
}

// Bytes returns a copy of the content. Callers cannot reach the internal
// buffer, which is what keeps Str immutable.
func (s *Str) Bytes() []byte {
	out := make([]byte, len(s.content))
	copy(out, s.content)
	return out
}

// Print writes the string's content followed by a newline to w.
func (s *Str) Print(w io.Writer) error {
	buf := make([]byte, 0, len(s.content)+1)
	buf = append(buf, s.content...)
	buf = append(buf, '\n')
	_, err := w.Write(buf)
	return err
}

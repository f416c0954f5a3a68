package ndarray

import (
	"fmt"
	"strings"
)

const indentWidth = 2

// String renders the array as nested brackets. The innermost dimension is
// printed on one line as "[a, b, c]"; every outer dimension opens a bracket
// on its own line and places one sub-array per line, indented two spaces per
// nesting level and separated by ",\n".
func (a *Array[T]) String() string {
	var b strings.Builder
	a.writeTo(&b, 0)
	return b.String()
}

func (a *Array[T]) writeTo(b *strings.Builder, level int) {
	pad := strings.Repeat(" ", level*indentWidth)
	b.WriteString(pad)

	if len(a.shape) <= 1 {
		b.WriteByte('[')
		for i, v := range a.data {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprint(b, v)
		}
		b.WriteByte(']')
		return
	}

	b.WriteString("[\n")
	for i := 0; i < a.shape[0]; i++ {
		if i > 0 {
			b.WriteString(",\n")
		}
		a.Row(i).writeTo(b, level+1)
	}
	b.WriteByte('\n')
	b.WriteString(pad)
	b.WriteByte(']')
}

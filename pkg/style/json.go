package style

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"unicode"

	"github.com/charmbracelet/lipgloss"
)

// PrintJSON 将 JSON 文本缩进并高亮后写入 w
//
// 入参支持 string / []byte（原始 JSON 文本）或任意可被 json.Marshal 的值
func PrintJSON(w io.Writer, v any) error {
	pretty, err := FormatJSON(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, colorizeJSON(pretty))
	return err
}

// FormatJSON 返回缩进后的 JSON 字符串，末尾总是带换行
func FormatJSON(v any) (string, error) {
	var src []byte
	switch x := v.(type) {
	case nil:
		return "null\n", nil
	case string:
		src = []byte(x)
	case []byte:
		src = x
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		src = b
	}

	src = bytes.TrimSpace(src)
	if len(src) == 0 {
		return "null\n", nil
	}
	var out bytes.Buffer
	if err := json.Indent(&out, src, "", "  "); err != nil {
		return "", err
	}
	out.WriteByte('\n')
	return out.String(), nil
}

// colorizeJSON 对已缩进的 JSON 文本按 token 着色，空白保持原样
func colorizeJSON(s string) string {
	keyStyle := lipgloss.NewStyle().Foreground(ColorJSONKey).Bold(true)
	strStyle := lipgloss.NewStyle().Foreground(ColorJSONValue)
	numStyle := lipgloss.NewStyle().Foreground(ColorJSONNumber)
	boolStyle := lipgloss.NewStyle().Foreground(ColorJSONBool)
	nullStyle := lipgloss.NewStyle().Foreground(ColorJSONNull)
	punctStyle := lipgloss.NewStyle().Foreground(ColorJSONPunct)

	var b bytes.Buffer
	for i := 0; i < len(s); {
		ch := s[i]
		switch {
		case ch == '"':
			j := stringEnd(s, i)
			token := s[i:j]
			// 下一个非空白字符为 ':' 时是键名
			k := j
			for k < len(s) && unicode.IsSpace(rune(s[k])) {
				k++
			}
			if k < len(s) && s[k] == ':' {
				b.WriteString(keyStyle.Render(token))
			} else {
				b.WriteString(strStyle.Render(token))
			}
			i = j
		case bytes.IndexByte([]byte("{}[]:,"), ch) >= 0:
			b.WriteString(punctStyle.Render(string(ch)))
			i++
		case ch == '-' || (ch >= '0' && ch <= '9'):
			j := i + 1
			for j < len(s) && bytes.IndexByte([]byte("0123456789.eE+-"), s[j]) >= 0 {
				j++
			}
			b.WriteString(numStyle.Render(s[i:j]))
			i = j
		case hasPrefixAt(s, i, "true"), hasPrefixAt(s, i, "false"):
			j := i + 4
			if s[i] == 'f' {
				j++
			}
			b.WriteString(boolStyle.Render(s[i:j]))
			i = j
		case hasPrefixAt(s, i, "null"):
			b.WriteString(nullStyle.Render("null"))
			i += 4
		default:
			b.WriteByte(ch)
			i++
		}
	}
	return b.String()
}

// stringEnd 返回从 i 处引号开始的字符串 token 的结束位置（半开区间）
func stringEnd(s string, i int) int {
	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case '"':
			return j + 1
		}
	}
	return len(s)
}

func hasPrefixAt(s string, i int, pref string) bool {
	return len(s)-i >= len(pref) && s[i:i+len(pref)] == pref
}

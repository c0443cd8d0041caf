package locators

import (
	"fmt"
	"strings"
)

// Strategy 定位策略
type Strategy int

const (
	ByID Strategy = iota
	ByClass
	ByXPath
)

func (s Strategy) String() string {
	switch s {
	case ByID:
		return "id"
	case ByClass:
		return "class"
	case ByXPath:
		return "xpath"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// Locator 元素定位器：(策略, 表达式)，值类型，创建后不再修改
type Locator struct {
	Strategy   Strategy
	Expression string
}

// ID 按 id 定位
func ID(id string) Locator {
	return Locator{Strategy: ByID, Expression: id}
}

// Class 按 class 定位
func Class(class string) Locator {
	return Locator{Strategy: ByClass, Expression: class}
}

// XPath 按结构路径定位
func XPath(expr string) Locator {
	return Locator{Strategy: ByXPath, Expression: expr}
}

func (l Locator) String() string {
	return l.Strategy.String() + "=" + l.Expression
}

// CSS 转换为 CSS 选择器，XPath 定位器返回 false
func (l Locator) CSS() (string, bool) {
	switch l.Strategy {
	case ByID:
		return `[id="` + cssEscape(l.Expression) + `"]`, true
	case ByClass:
		return "." + l.Expression, true
	default:
		return "", false
	}
}

// AsXPath 转换为等价的 XPath 表达式
func (l Locator) AsXPath() string {
	switch l.Strategy {
	case ByID:
		return "//*[@id=" + xpathLiteral(l.Expression) + "]"
	case ByClass:
		return "//*[contains(concat(' ', normalize-space(@class), ' '), " + xpathLiteral(" "+l.Expression+" ") + ")]"
	default:
		return l.Expression
	}
}

func cssEscape(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}

// xpathLiteral 生成 XPath 字符串字面量，同时含单双引号时用 concat()
func xpathLiteral(s string) string {
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	parts := strings.Split(s, "'")
	quoted := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			quoted = append(quoted, `"'"`)
		}
		quoted = append(quoted, "'"+p+"'")
	}
	return "concat(" + strings.Join(quoted, ", ") + ")"
}

package generator

import (
	"context"
	"fmt"
	"strings"
)

// MockLLM 一个简单的占位实现，便于本地调试，不调用外部模型。
// 输出只是把提示词原样包进 Markdown，用于检查模板和输出文件名。
type MockLLM struct{}

func (m MockLLM) Complete(_ context.Context, prompt Prompt) (string, error) {
	var sb strings.Builder
	sb.WriteString("<!-- mock completion -->\n\n")
	fmt.Fprintf(&sb, "System: %s\n\n", prompt.System)
	sb.WriteString(prompt.User)
	sb.WriteString("\n")
	return sb.String(), nil
}

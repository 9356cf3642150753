package generator

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

const (
	// DefaultSystemPrompt 在未指定或无法读取系统提示词文件时使用。
	DefaultSystemPrompt = "You are a helpful content creator assistant."
	// DefaultSystemPromptArg 是 --system-prompt 的默认哨兵值。
	DefaultSystemPromptArg = "default"

	contentPlaceholder = "{content}"
	templateExt        = ".txt"
)

// Prompt 表示发送给 LLM 的消息集合。
type Prompt struct {
	System string
	User   string
}

// TemplateResolver 按输出标签查找提示词模板，找不到时返回 false。
type TemplateResolver interface {
	Resolve(label string) (string, bool)
}

// DirTemplates 从目录读取 <label>.txt，每次调用都重新读取，不缓存。
type DirTemplates struct {
	Dir    string
	Logger *slog.Logger
}

func (d DirTemplates) Resolve(label string) (string, bool) {
	path := filepath.Join(d.Dir, label+templateExt)
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) && d.Logger != nil {
			d.Logger.Warn("failed to read prompt file, using default prompt", "path", path, "err", err)
		}
		return "", false
	}
	return string(data), true
}

// MapTemplates 是内存中的模板表，主要用于测试。
type MapTemplates map[string]string

func (m MapTemplates) Resolve(label string) (string, bool) {
	tpl, ok := m[label]
	return tpl, ok
}

// BuildUserPrompt 用模板包装正文；没有模板时生成通用指令。
func BuildUserPrompt(label, content string, templates TemplateResolver) string {
	if templates != nil {
		if tpl, ok := templates.Resolve(label); ok {
			return strings.ReplaceAll(tpl, contentPlaceholder, content)
		}
	}
	return fmt.Sprintf("You are a helpful assistant. Please process the following text for the '%s' format:\n\n%s", label, content)
}

// ResolveSystemPrompt 解析 --system-prompt：哨兵值返回默认提示词；
// 否则读取文件（相对路径基于安装目录 root），失败时告警并回退默认值。
func ResolveSystemPrompt(arg, root string, logger *slog.Logger) string {
	if arg == "" || arg == DefaultSystemPromptArg {
		return DefaultSystemPrompt
	}
	path := arg
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if logger != nil {
			if errors.Is(err, os.ErrNotExist) {
				logger.Warn("system prompt file not found, using default", "path", path)
			} else {
				logger.Warn("failed to read system prompt file, using default", "path", path, "err", err)
			}
		}
		return DefaultSystemPrompt
	}
	return strings.TrimSpace(string(data))
}

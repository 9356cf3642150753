package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"auto_content_publisher/document"
)

// Agent 对每个输出标签调用一次模型，并把结果写到派生文件。
type Agent struct {
	llm       LLMClient
	templates TemplateResolver
	logger    *slog.Logger
}

func NewAgent(llm LLMClient, templates TemplateResolver, logger *slog.Logger) (*Agent, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Agent{llm: llm, templates: templates, logger: logger}, nil
}

// Job 描述一次生成：输入文件、已去除发布标记的正文、系统提示词和标签。
type Job struct {
	InputPath    string
	Content      string
	SystemPrompt string
	Labels       []string
	// OnStart 在请求模型之前调用（可选）。
	OnStart func(label string)
	// OnResult 在每个标签完成后调用（可选），用于即时输出进度。
	OnResult func(LabelResult)
}

// LabelResult 是单个标签的结果；Err 非空表示该标签失败。
type LabelResult struct {
	Label      string
	OutputPath string
	Duration   time.Duration
	Err        error
}

// Generate 串行处理所有标签。单个标签失败不会中断其余标签。
func (a *Agent) Generate(ctx context.Context, job Job) []LabelResult {
	// 防御：即使调用方忘记处理，也不让发布标记进入提示词。
	content := document.StripMarker(job.Content)

	results := make([]LabelResult, 0, len(job.Labels))
	for _, label := range job.Labels {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		res := a.generateOne(ctx, job, label, content)
		if res.Err != nil {
			a.logger.Error("label failed", "label", label, "err", res.Err)
		} else {
			a.logger.Info("label generated", "label", label, "output", res.OutputPath, "duration", res.Duration)
		}
		if job.OnResult != nil {
			job.OnResult(res)
		}
		results = append(results, res)
	}
	return results
}

func (a *Agent) generateOne(ctx context.Context, job Job, label, content string) LabelResult {
	res := LabelResult{Label: label}
	if err := ValidateLabel(label); err != nil {
		res.Err = err
		return res
	}

	prompt := Prompt{
		System: job.SystemPrompt,
		User:   BuildUserPrompt(label, content, a.templates),
	}
	a.logger.Debug("requesting completion", "label", label, "prompt_chars", len(prompt.User))
	if job.OnStart != nil {
		job.OnStart(label)
	}

	start := time.Now()
	raw, err := a.llm.Complete(ctx, prompt)
	res.Duration = time.Since(start)
	if err != nil {
		res.Err = err
		return res
	}
	out := document.DerivedPath(job.InputPath, label)
	if err := os.WriteFile(out, []byte(raw), 0o644); err != nil {
		res.Err = fmt.Errorf("write %s: %w", out, err)
		return res
	}
	res.OutputPath = out
	return res
}

// Failed 统计失败的标签数。
func Failed(results []LabelResult) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

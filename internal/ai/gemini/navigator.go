package gemini

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/spigell/career-navigator/internal/career"
	"github.com/spigell/career-navigator/internal/utils"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

//go:embed prompt.md
var promptTemplate string

const (
	defaultMaxLogLength = 200
	defaultMaxPaths     = 5
	emptyPlaceholder    = "none"
)

// Navigator scores a profile with Gemini and returns ranked career paths.
type Navigator struct {
	generator contentGenerator
	logger    *zap.Logger
	maxPaths  int
	maxLogLen int
}

func NewNavigator(generator contentGenerator, logger *zap.Logger, maxPaths, maxLogLength int) *Navigator {
	if maxPaths <= 0 {
		maxPaths = defaultMaxPaths
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Navigator{
		generator: generator,
		logger:    logger,
		maxPaths:  maxPaths,
		maxLogLen: maxLogLength,
	}
}

func (n *Navigator) Fetch(ctx context.Context, req career.Request) ([]career.Path, error) {
	prompt := buildPrompt(req, n.maxPaths)

	n.logger.Debug("gemini generate content request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, n.maxLogLen)),
	)

	raw, err := n.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	n.logger.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, n.maxLogLen)),
	)

	return parseResponse(raw)
}

func buildPrompt(req career.Request, maxPaths int) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Skills:\n{{SKILLS}}\n\nInterests:\n{{INTERESTS}}\n\nJSON Response:"
	}

	return strings.NewReplacer(
		"{{SKILLS}}", orPlaceholder(req.Skills),
		"{{INTERESTS}}", orPlaceholder(req.Interests),
		"{{MAX_PATHS}}", strconv.Itoa(maxPaths),
	).Replace(template)
}

func orPlaceholder(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return emptyPlaceholder
	}
	return s
}

// parseResponse accepts a bare JSON array or an object wrapping it under "paths"
// and decodes loosely typed values (numbers, comma separated gaps) into paths.
func parseResponse(raw string) ([]career.Path, error) {
	cleaned := extractJSON(raw)

	var data any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("%w: parse gemini response: %w", career.ErrMalformed, err)
	}

	if obj, ok := data.(map[string]any); ok {
		data = obj["paths"]
	}

	items, ok := data.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: gemini response is not a list", career.ErrMalformed)
	}

	paths := make([]career.Path, 0, len(items))
	for i, item := range items {
		var p career.Path
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			DecodeHook:       mapstructure.StringToSliceHookFunc(","),
			WeaklyTypedInput: true,
			Result:           &p,
		})
		if err != nil {
			return nil, err
		}
		if err := decoder.Decode(item); err != nil {
			return nil, fmt.Errorf("%w: path %d: %w", career.ErrMalformed, i, err)
		}

		for j := range p.SkillGaps {
			p.SkillGaps[j] = strings.TrimSpace(p.SkillGaps[j])
		}
		p.SkillGaps = p.Gaps()
		paths = append(paths, p)
	}

	return paths, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

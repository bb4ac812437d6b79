package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/decker502/textkit/internal/textedit"
	"gopkg.in/yaml.v3"
)

// 预设缺省值
const (
	DefaultInputWidth    = 200.0
	DefaultInputHeight   = 40.0
	DefaultInputPadding  = 8.0
	DefaultInputFontSize = 16.0
)

// TextInputConfigFile 输入框预设文件
type TextInputConfigFile struct {
	Inputs []TextInputConfig `yaml:"inputs"`
}

// TextInputConfig 单个输入框预设
type TextInputConfig struct {
	ID          string       `yaml:"id"`          // 预设 ID，如 "player_name"
	Width       float64      `yaml:"width"`       // 宽度（像素），默认 200
	Height      float64      `yaml:"height"`      // 高度（像素），默认 40；多行时为可见区域高度
	MaxLength   int          `yaml:"maxLength"`   // 最大字符数，0 = 无限制（换行占 2 个字符）
	Multiline   bool         `yaml:"multiline"`   // 是否允许换行
	Placeholder string       `yaml:"placeholder"` // 占位符文本
	Padding     float64      `yaml:"padding"`     // 四边内边距（像素），默认 8
	FontSize    float64      `yaml:"fontSize"`    // 字号，默认 16
	Filters     FilterConfig `yaml:"filters"`     // 字符类别过滤，省略的类别默认允许
	Text        string       `yaml:"text"`        // 初始文本（可选）
}

// FilterConfig 字符类别开关，nil 表示使用默认值（允许）
type FilterConfig struct {
	Letters     *bool `yaml:"letters"`
	Numbers     *bool `yaml:"numbers"`
	Symbols     *bool `yaml:"symbols"`
	Punctuation *bool `yaml:"punctuation"`
	Space       *bool `yaml:"space"`
}

// Filters 转换为 textedit.Filters，换行开关由 multiline 决定
func (f FilterConfig) Filters(multiline bool) textedit.Filters {
	return textedit.Filters{
		Letters:     boolOr(f.Letters, true),
		Numbers:     boolOr(f.Numbers, true),
		Symbols:     boolOr(f.Symbols, true),
		Punctuation: boolOr(f.Punctuation, true),
		Space:       boolOr(f.Space, true),
		Newline:     multiline,
	}
}

// EditorFilters 返回该预设对应的字符过滤
func (c *TextInputConfig) EditorFilters() textedit.Filters {
	return c.Filters.Filters(c.Multiline)
}

// EditorOptions 返回创建 Editor 所需的参数
func (c *TextInputConfig) EditorOptions() textedit.EditorOptions {
	return textedit.EditorOptions{
		Filters:   c.EditorFilters(),
		MaxLength: c.MaxLength,
		Text:      c.Text,
	}
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// LoadTextInputConfigs 从 YAML 文件加载输入框预设
func LoadTextInputConfigs(path string) (*TextInputConfigFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read text input config file %s: %w", path, err)
	}

	cfg, err := ParseTextInputConfigs(data)
	if err != nil {
		return nil, fmt.Errorf("invalid text input config in %s: %w", path, err)
	}
	return cfg, nil
}

// ParseTextInputConfigs 解析 YAML 内容，应用缺省值并校验
func ParseTextInputConfigs(data []byte) (*TextInputConfigFile, error) {
	var file TextInputConfigFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse text input config YAML: %w", err)
	}

	for i := range file.Inputs {
		file.Inputs[i].applyDefaults()
	}

	if err := file.Validate(); err != nil {
		return nil, err
	}
	return &file, nil
}

func (c *TextInputConfig) applyDefaults() {
	if c.Width == 0 {
		c.Width = DefaultInputWidth
	}
	if c.Height == 0 {
		c.Height = DefaultInputHeight
	}
	if c.Padding == 0 {
		c.Padding = DefaultInputPadding
	}
	if c.FontSize == 0 {
		c.FontSize = DefaultInputFontSize
	}
}

// Validate 校验预设：ID 非空且唯一，尺寸和长度不能为负
func (f *TextInputConfigFile) Validate() error {
	var errs []error
	seen := make(map[string]bool, len(f.Inputs))
	for i, c := range f.Inputs {
		if c.ID == "" {
			errs = append(errs, fmt.Errorf("inputs[%d]: id is required", i))
		} else if seen[c.ID] {
			errs = append(errs, fmt.Errorf("inputs[%d]: duplicate id %q", i, c.ID))
		}
		seen[c.ID] = true

		if c.Width < 0 || c.Height < 0 {
			errs = append(errs, fmt.Errorf("inputs[%d] %q: negative size %vx%v", i, c.ID, c.Width, c.Height))
		}
		if c.MaxLength < 0 {
			errs = append(errs, fmt.Errorf("inputs[%d] %q: negative maxLength %d", i, c.ID, c.MaxLength))
		}
		if c.Padding < 0 || c.FontSize < 0 {
			errs = append(errs, fmt.Errorf("inputs[%d] %q: negative padding or fontSize", i, c.ID))
		}
	}
	return errors.Join(errs...)
}

// Find 按 ID 查找预设
func (f *TextInputConfigFile) Find(id string) (*TextInputConfig, bool) {
	for i := range f.Inputs {
		if f.Inputs[i].ID == id {
			return &f.Inputs[i], true
		}
	}
	return nil, false
}

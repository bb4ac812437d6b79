// Package persist 保存和恢复输入框内容
//
// 只持久化文本、长度限制和字符过滤。光标位置等临时状态不保存，
// 恢复后光标位于文本末尾。
package persist

import (
	"errors"
	"fmt"
	"time"

	"github.com/decker502/textkit/internal/textedit"
)

// TextInputDataVersion 当前存档格式版本
const TextInputDataVersion = 1

// ErrIncompatibleVersion 存档版本与当前版本不一致
var ErrIncompatibleVersion = errors.New("incompatible text input data version")

// TextInputData 输入框存档数据
type TextInputData struct {
	Version   int                  `yaml:"version"`
	Text      string               `yaml:"text"`
	MaxLength int                  `yaml:"maxLength"`
	Filters   textedit.FilterFlags `yaml:"filters"`
	SavedAt   time.Time            `yaml:"savedAt"`
}

// Capture 从 Editor 收集存档数据
func Capture(editor *textedit.Editor) *TextInputData {
	return &TextInputData{
		Version:   TextInputDataVersion,
		Text:      editor.Text(),
		MaxLength: editor.MaxLength(),
		Filters:   editor.Filters().Flags(),
		SavedAt:   time.Now(),
	}
}

// CheckVersion 检查存档版本
func (d *TextInputData) CheckVersion() error {
	if d.Version != TextInputDataVersion {
		return fmt.Errorf("%w: %d (expected %d)", ErrIncompatibleVersion, d.Version, TextInputDataVersion)
	}
	return nil
}

// Restore 把存档数据写回 Editor，光标移到文本末尾
//
// 文本按 SetText 规则处理：超长部分截断，换行按过滤设置规范化。
func (d *TextInputData) Restore(editor *textedit.Editor) error {
	if err := d.CheckVersion(); err != nil {
		return err
	}
	editor.SetFilters(d.Filters.Filters())
	editor.SetMaxLength(d.MaxLength)
	editor.SetText(d.Text)
	return nil
}

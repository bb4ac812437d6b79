package persist

import (
	"fmt"
	"log"

	"github.com/decker502/textkit/internal/textedit"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const textInputObject = "textinputs"

// TextInputStore 按输入框 ID 保存内容（gdata 跨平台存储，YAML 编码）
//
// gdataManager 为 nil 时进入降级模式：数据只保存在内存中，进程退出即丢失。
type TextInputStore struct {
	gdataManager *gdata.Manager
	memory       map[string][]byte
}

// NewTextInputStore 创建存储
func NewTextInputStore(gdataManager *gdata.Manager) *TextInputStore {
	if gdataManager == nil {
		log.Printf("[TextInputStore] Warning: no gdata manager, values are kept in memory only")
	}
	return &TextInputStore{
		gdataManager: gdataManager,
		memory:       make(map[string][]byte),
	}
}

// OpenTextInputStore 打开应用 appName 的 gdata 存储
// 打开失败时返回降级模式的存储和错误，调用方可以继续使用
func OpenTextInputStore(appName string) (*TextInputStore, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return NewTextInputStore(nil), fmt.Errorf("failed to open gdata storage: %w", err)
	}
	return NewTextInputStore(m), nil
}

// Persistent 返回数据是否会写入磁盘
func (s *TextInputStore) Persistent() bool {
	return s.gdataManager != nil
}

// Exists 判断是否保存过该输入框
func (s *TextInputStore) Exists(id string) bool {
	if s.gdataManager == nil {
		_, ok := s.memory[id]
		return ok
	}
	return s.gdataManager.ObjectPropExists(textInputObject, id)
}

// Save 保存存档数据
func (s *TextInputStore) Save(id string, data *TextInputData) error {
	if id == "" {
		return fmt.Errorf("text input id is empty")
	}
	raw, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal text input %q: %w", id, err)
	}

	if s.gdataManager == nil {
		s.memory[id] = raw
		return nil
	}
	if err := s.gdataManager.SaveObjectProp(textInputObject, id, raw); err != nil {
		return fmt.Errorf("failed to save text input %q: %w", id, err)
	}
	return nil
}

// Load 读取存档数据，未保存过时返回 (nil, false, nil)
func (s *TextInputStore) Load(id string) (*TextInputData, bool, error) {
	if !s.Exists(id) {
		return nil, false, nil
	}

	var raw []byte
	if s.gdataManager == nil {
		raw = s.memory[id]
	} else {
		var err error
		raw, err = s.gdataManager.LoadObjectProp(textInputObject, id)
		if err != nil {
			return nil, true, fmt.Errorf("failed to load text input %q: %w", id, err)
		}
	}

	var data TextInputData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, true, fmt.Errorf("failed to unmarshal text input %q: %w", id, err)
	}
	if err := data.CheckVersion(); err != nil {
		return nil, true, fmt.Errorf("text input %q: %w", id, err)
	}
	return &data, true, nil
}

// SaveEditor 保存 Editor 当前内容
func (s *TextInputStore) SaveEditor(id string, editor *textedit.Editor) error {
	if err := s.Save(id, Capture(editor)); err != nil {
		return err
	}
	log.Printf("[TextInputStore] Saved %q (%d runes)", id, editor.Len())
	return nil
}

// RestoreEditor 把保存过的内容写回 Editor，返回是否找到存档
// 读取失败时 Editor 保持不变
func (s *TextInputStore) RestoreEditor(id string, editor *textedit.Editor) (bool, error) {
	data, ok, err := s.Load(id)
	if err != nil || !ok {
		return ok, err
	}
	if err := data.Restore(editor); err != nil {
		return true, err
	}
	log.Printf("[TextInputStore] Restored %q (%d runes)", id, editor.Len())
	return true, nil
}

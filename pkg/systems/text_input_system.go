package systems

import (
	"log"

	"github.com/decker502/textkit/internal/textedit"
	"github.com/decker502/textkit/pkg/components"
	"github.com/decker502/textkit/pkg/ecs"
	"github.com/decker502/textkit/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	// 按住按键：第 1 帧触发，按住满 keyRepeatDelay 帧后每 keyRepeatInterval 帧触发一次
	keyRepeatDelay    = 30
	keyRepeatInterval = 3

	// 光标淡入或淡出一次的时长（秒）
	cursorFadeDuration = 0.5
)

// KeyboardInput 文本输入系统的输入源接口
// 用于依赖注入，测试时替换为 mock
type KeyboardInput interface {
	AppendInputChars(runes []rune) []rune
	KeyPressDuration(key ebiten.Key) int
	IsKeyJustPressed(key ebiten.Key) bool
	JustClicked() (bool, int, int)
}

// ebitenKeyboardInput Ebitengine 默认实现
type ebitenKeyboardInput struct{}

func (ebitenKeyboardInput) AppendInputChars(runes []rune) []rune {
	return ebiten.AppendInputChars(runes)
}

func (ebitenKeyboardInput) KeyPressDuration(key ebiten.Key) int {
	return inpututil.KeyPressDuration(key)
}

func (ebitenKeyboardInput) IsKeyJustPressed(key ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(key)
}

func (ebitenKeyboardInput) JustClicked() (bool, int, int) {
	return utils.IsJustTouchedOrClicked()
}

// 可按住连发的编辑/导航按键，按处理顺序排列
var repeatKeys = []struct {
	key  ebiten.Key
	kind textedit.IntentKind
}{
	{ebiten.KeyBackspace, textedit.IntentBackspace},
	{ebiten.KeyDelete, textedit.IntentDelete},
	{ebiten.KeyArrowLeft, textedit.IntentLeft},
	{ebiten.KeyArrowRight, textedit.IntentRight},
	{ebiten.KeyArrowUp, textedit.IntentUp},
	{ebiten.KeyArrowDown, textedit.IntentDown},
}

// TextInputSystem 文本输入系统
//
// 每帧先收集输入再应用到 Editor，必须在 TextInputRenderSystem.Draw 之前运行。
// 职责：
//   - 点击输入框获得焦点，点击其他位置失去焦点
//   - 把键盘事件转换为 textedit.Intent（支持按住连发）
//   - 回车：多行输入框插入换行，单行输入框触发 OnSubmit
//   - 驱动光标闪烁（gween 正弦缓动的透明度渐变）
type TextInputSystem struct {
	entityManager *ecs.EntityManager
	input         KeyboardInput
	chars         []rune
}

// NewTextInputSystem 创建文本输入系统
func NewTextInputSystem(em *ecs.EntityManager) *TextInputSystem {
	return NewTextInputSystemWithInput(em, ebitenKeyboardInput{})
}

// NewTextInputSystemWithInput 创建带自定义输入源的文本输入系统（用于测试）
func NewTextInputSystemWithInput(em *ecs.EntityManager, input KeyboardInput) *TextInputSystem {
	return &TextInputSystem{
		entityManager: em,
		input:         input,
	}
}

// Update 更新文本输入系统
func (s *TextInputSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith2[*components.TextInputComponent, *components.PositionComponent](s.entityManager)

	if clicked, x, y := s.input.JustClicked(); clicked {
		s.focusAt(entities, float64(x), float64(y))
	}

	for _, id := range entities {
		input, _ := ecs.GetComponent[*components.TextInputComponent](s.entityManager, id)
		if input.Editor == nil {
			continue
		}

		if !input.IsFocused {
			input.CursorVisible = false
			continue
		}

		s.handleKeyboardInput(id, input)
		s.updateCursorBlink(input, deltaTime)
	}
}

// Focus 让指定输入框获得焦点，其余输入框失去焦点
func (s *TextInputSystem) Focus(target ecs.EntityID) {
	for _, id := range ecs.GetEntitiesWith1[*components.TextInputComponent](s.entityManager) {
		input, _ := ecs.GetComponent[*components.TextInputComponent](s.entityManager, id)
		s.setFocused(id, input, id == target)
	}
}

// Focused 返回当前获得焦点的输入框
func (s *TextInputSystem) Focused() (ecs.EntityID, bool) {
	for _, id := range ecs.GetEntitiesWith1[*components.TextInputComponent](s.entityManager) {
		if input, _ := ecs.GetComponent[*components.TextInputComponent](s.entityManager, id); input.IsFocused {
			return id, true
		}
	}
	return 0, false
}

func (s *TextInputSystem) focusAt(entities []ecs.EntityID, x, y float64) {
	for _, id := range entities {
		input, _ := ecs.GetComponent[*components.TextInputComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		s.setFocused(id, input, utils.PointInRect(x, y, pos.X, pos.Y, input.Width, input.Height))
	}
}

func (s *TextInputSystem) setFocused(id ecs.EntityID, input *components.TextInputComponent, focused bool) {
	if input.IsFocused == focused {
		return
	}
	input.IsFocused = focused
	if focused {
		input.RestartBlink()
		log.Printf("[TextInputSystem] 输入框 %d 获得焦点", id)
	} else {
		input.CursorVisible = false
	}
}

// handleKeyboardInput 收集本帧的输入并应用到 Editor
func (s *TextInputSystem) handleKeyboardInput(id ecs.EntityID, input *components.TextInputComponent) {
	intents, submit := s.collectIntents(input)

	if len(intents) > 0 {
		input.Editor.ApplyAll(intents)
		// 有按键就重新开始闪烁，光标保持可见
		input.RestartBlink()
	}

	if submit && input.OnSubmit != nil {
		log.Printf("[TextInputSystem] 输入框 %d 提交: %q", id, input.Editor.Text())
		input.OnSubmit(input.Editor.Text())
	}
}

func (s *TextInputSystem) collectIntents(input *components.TextInputComponent) ([]textedit.Intent, bool) {
	s.chars = s.input.AppendInputChars(s.chars[:0])
	intents := textedit.IntentsFromText(string(s.chars))

	for _, k := range repeatKeys {
		if s.repeating(k.key) {
			intents = append(intents, textedit.Key(k.kind))
		}
	}
	if s.input.IsKeyJustPressed(ebiten.KeyHome) {
		intents = append(intents, textedit.Key(textedit.IntentHome))
	}
	if s.input.IsKeyJustPressed(ebiten.KeyEnd) {
		intents = append(intents, textedit.Key(textedit.IntentEnd))
	}

	submit := false
	if input.Multiline {
		if s.repeating(ebiten.KeyEnter) || s.repeating(ebiten.KeyNumpadEnter) {
			intents = append(intents, textedit.Key(textedit.IntentNewline))
		}
	} else if s.input.IsKeyJustPressed(ebiten.KeyEnter) || s.input.IsKeyJustPressed(ebiten.KeyNumpadEnter) {
		submit = true
	}
	return intents, submit
}

// repeating 判断按键本帧是否触发（支持按住连发）
func (s *TextInputSystem) repeating(key ebiten.Key) bool {
	d := s.input.KeyPressDuration(key)
	return d == 1 || (d >= keyRepeatDelay && d%keyRepeatInterval == 0)
}

// updateCursorBlink 更新光标闪烁：透明度在 1 和 0 之间往复渐变
func (s *TextInputSystem) updateCursorBlink(input *components.TextInputComponent, deltaTime float64) {
	if input.BlinkTween == nil {
		input.BlinkTween = gween.New(1, 0, cursorFadeDuration, ease.InOutSine)
	}

	alpha, finished := input.BlinkTween.Update(float32(deltaTime))
	input.CursorAlpha = float64(alpha)
	input.CursorVisible = input.CursorAlpha >= 0.5

	if finished {
		input.BlinkTween = gween.New(alpha, 1-alpha, cursorFadeDuration, ease.InOutSine)
	}
}

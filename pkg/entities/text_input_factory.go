package entities

import (
	"fmt"
	"log"

	"github.com/decker502/textkit/internal/textedit"
	"github.com/decker502/textkit/pkg/components"
	"github.com/decker502/textkit/pkg/config"
	"github.com/decker502/textkit/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// TextInputOptions 创建输入框时的附加参数
type TextInputOptions struct {
	BorderImage *ebiten.Image     // 边框图片（可选）
	Face        text.Face         // 字体（可选），通常按 cfg.FontSize 创建
	Focused     bool              // 创建后立即获得焦点
	OnSubmit    func(text string) // 单行输入框按下回车时调用
	OnChange    func(text string) // 内容变化时调用
}

// NewTextInputEntity 按预设创建输入框实体，(x, y) 为左上角
func NewTextInputEntity(em *ecs.EntityManager, cfg *config.TextInputConfig, x, y float64) (ecs.EntityID, error) {
	return NewTextInputEntityWithOptions(em, cfg, x, y, TextInputOptions{})
}

// NewTextInputEntityWithOptions 按预设和附加参数创建输入框实体
func NewTextInputEntityWithOptions(em *ecs.EntityManager, cfg *config.TextInputConfig, x, y float64, opts TextInputOptions) (ecs.EntityID, error) {
	if cfg == nil {
		return 0, fmt.Errorf("text input config is nil")
	}

	editor := textedit.NewEditor(cfg.EditorOptions())
	editor.OnChange = opts.OnChange

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, &components.TextInputComponent{
		Editor:        editor,
		BorderImage:   opts.BorderImage,
		Face:          opts.Face,
		Width:         cfg.Width,
		Height:        cfg.Height,
		PaddingLeft:   cfg.Padding,
		PaddingRight:  cfg.Padding,
		PaddingTop:    cfg.Padding,
		PaddingBottom: cfg.Padding,
		Placeholder:   cfg.Placeholder,
		Multiline:     cfg.Multiline,
		IsFocused:     opts.Focused,
		CursorVisible: opts.Focused,
		CursorAlpha:   1,
		OnSubmit:      opts.OnSubmit,
		ConfigID:      cfg.ID,
	})

	log.Printf("[TextInputFactory] 创建输入框 %d (预设 %q, %.0fx%.0f, 多行=%v)", id, cfg.ID, cfg.Width, cfg.Height, cfg.Multiline)
	return id, nil
}

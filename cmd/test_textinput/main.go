// Package main 提供单个输入框的测试工具
// 用于验证 TextInputComponent 和相关系统的功能
//
// 用法:
//
//	go run ./cmd/test_textinput -config assets/config/text_inputs.yaml -id player_name
//	go run ./cmd/test_textinput -font font.png -meta font.txt
//
// 功能:
//   - 按预设创建一个获得焦点的输入框
//   - 支持文本输入、光标移动、退格、删除等操作
//   - 指定位图字体时，在输入框下方用位图字体预览内容和光标位置
//   - 单行输入框按 Enter 提交后打印内容并退出
//   - 按 ESC 退出
package main

import (
	"bytes"
	"flag"
	"fmt"
	"image/color"
	"log"

	"github.com/decker502/textkit/pkg/components"
	"github.com/decker502/textkit/pkg/config"
	"github.com/decker502/textkit/pkg/ecs"
	"github.com/decker502/textkit/pkg/entities"
	"github.com/decker502/textkit/pkg/systems"
	"github.com/decker502/textkit/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	screenWidth  = 800
	screenHeight = 600
)

// defaultPreset 未指定 -config 时使用
const defaultPreset = `
inputs:
  - id: test
    maxLength: 24
    placeholder: "type here"
`

// TestGame 测试程序结构
type TestGame struct {
	entityManager *ecs.EntityManager

	textInputSystem       *systems.TextInputSystem
	textInputRenderSystem *systems.TextInputRenderSystem

	inputBoxEntity ecs.EntityID
	input          *components.TextInputComponent

	// 可选的位图字体预览
	bitmapFont   *utils.BitmapFont
	bitmapOracle *utils.BitmapFontOracle
	previewCaret *ebiten.Image

	resultReceived bool
	resultText     string
}

// NewTestGame 创建测试程序
func NewTestGame(cfg *config.TextInputConfig, bitmapFont *utils.BitmapFont) (*TestGame, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("加载字体失败: %w", err)
	}

	em := ecs.NewEntityManager()
	g := &TestGame{
		entityManager:         em,
		textInputSystem:       systems.NewTextInputSystem(em),
		textInputRenderSystem: systems.NewTextInputRenderSystem(em, &text.GoTextFace{Source: src, Size: cfg.FontSize}),
		bitmapFont:            bitmapFont,
	}

	x := (screenWidth - cfg.Width) / 2
	y := (screenHeight - cfg.Height) / 2
	g.inputBoxEntity, err = entities.NewTextInputEntityWithOptions(em, cfg, x, y, entities.TextInputOptions{
		Focused:  true,
		OnSubmit: func(s string) {
			g.resultText = fmt.Sprintf("提交: %q", s)
			g.resultReceived = true
		},
	})
	if err != nil {
		return nil, fmt.Errorf("创建输入框失败: %w", err)
	}
	g.input, _ = ecs.GetComponent[*components.TextInputComponent](em, g.inputBoxEntity)

	if bitmapFont != nil {
		g.bitmapOracle = &utils.BitmapFontOracle{Font: bitmapFont, Buffer: g.input.Editor.Buffer()}
		g.previewCaret = ebiten.NewImage(2, bitmapFont.LineHeight)
		g.previewCaret.Fill(color.White)
	}

	log.Printf("输入框已创建 (entity=%d, preset=%s)", g.inputBoxEntity, cfg.ID)
	return g, nil
}

// Update 更新逻辑
func (g *TestGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if g.resultReceived {
		log.Println(g.resultText)
		return ebiten.Termination
	}

	g.textInputSystem.Update(1.0 / 60.0)
	g.entityManager.RemoveMarkedEntities()
	return nil
}

// Draw 绘制画面
func (g *TestGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 25, G: 25, B: 112, A: 255})
	g.textInputRenderSystem.Draw(screen)

	if g.bitmapFont != nil {
		g.drawBitmapPreview(screen)
	}
}

// drawBitmapPreview 用位图字体绘制光标所在行，并按 BitmapFontOracle 的位置绘制光标
func (g *TestGame) drawBitmapPreview(screen *ebiten.Image) {
	pos, _ := ecs.GetComponent[*components.PositionComponent](g.entityManager, g.inputBoxEntity)
	x := pos.X
	y := pos.Y + g.input.Height + 16

	line, _ := g.input.Editor.CaretLineColumn()
	g.bitmapFont.DrawText(screen, g.input.Editor.Lines()[line], x, y)

	caretX, err := g.bitmapOracle.XPositionOf(g.input.Editor.CaretIndex())
	if err != nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x+caretX, y)
	screen.DrawImage(g.previewCaret, op)
}

// Layout 设置窗口布局
func (g *TestGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func loadPreset(path, id string) (*config.TextInputConfig, error) {
	var (
		file *config.TextInputConfigFile
		err  error
	)
	if path == "" {
		file, err = config.ParseTextInputConfigs([]byte(defaultPreset))
		id = "test"
	} else {
		file, err = config.LoadTextInputConfigs(path)
	}
	if err != nil {
		return nil, err
	}
	cfg, ok := file.Find(id)
	if !ok {
		return nil, fmt.Errorf("预设 %q 不存在于 %s", id, path)
	}
	return cfg, nil
}

func main() {
	configFlag := flag.String("config", "", "输入框预设 YAML 文件")
	idFlag := flag.String("id", "player_name", "使用的预设 ID")
	fontFlag := flag.String("font", "", "位图字体图片（可选）")
	metaFlag := flag.String("meta", "", "位图字体描述文件（与 -font 一起使用）")
	flag.Parse()

	cfg, err := loadPreset(*configFlag, *idFlag)
	if err != nil {
		log.Fatalf("加载预设失败: %v", err)
	}

	var bitmapFont *utils.BitmapFont
	if *fontFlag != "" {
		bitmapFont, err = utils.LoadBitmapFont(*fontFlag, *metaFlag)
		if err != nil {
			log.Fatalf("加载位图字体失败: %v", err)
		}
	}

	testGame, err := NewTestGame(cfg, bitmapFont)
	if err != nil {
		log.Fatalf("创建测试程序失败: %v", err)
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("文本输入框测试 - Text Input Test")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(testGame); err != nil {
		log.Fatalf("运行游戏失败: %v", err)
	}
}

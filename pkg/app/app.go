// Package app 提供输入框演示程序的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来：加载输入框预设、创建实体、
// 从持久化存储恢复内容，并驱动 TextInputSystem 和 TextInputRenderSystem。
// 桌面端通过 main.go 调用 NewApp()。
package app

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/decker502/textkit/pkg/components"
	"github.com/decker502/textkit/pkg/config"
	"github.com/decker502/textkit/pkg/ecs"
	"github.com/decker502/textkit/pkg/embedded"
	"github.com/decker502/textkit/pkg/entities"
	"github.com/decker502/textkit/pkg/persist"
	"github.com/decker502/textkit/pkg/systems"
	"github.com/decker502/textkit/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	// WindowWidth 逻辑屏幕宽度
	WindowWidth = 800
	// WindowHeight 逻辑屏幕高度
	WindowHeight = 600

	// PresetsPath 内置输入框预设在嵌入资源中的路径
	PresetsPath = "assets/config/text_inputs.yaml"

	marginX   = 40.0
	marginY   = 40.0
	rowGap    = 28.0
	labelSize = 14.0

	// 与 TextInputRenderSystem 使用的不拉伸宽度一致
	borderEdge = 10
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// AppName 持久化存储使用的应用名
	AppName string
	// ConfigPath 输入框预设 YAML 文件，为空则使用嵌入的预设
	ConfigPath string
	// ExportDir 保存时额外导出 .sav 和 .xml 的目录，为空则不导出
	ExportDir string
}

// App 是演示程序的核心包装器，实现 ebiten.Game 接口
type App struct {
	entityManager *ecs.EntityManager
	store         *persist.TextInputStore
	fontSource    *text.GoTextFaceSource
	faces         map[float64]*text.GoTextFace // 按字号缓存的输入框字体
	labelFace     *text.GoTextFace
	exportDir     string

	textInputSystem       *systems.TextInputSystem
	textInputRenderSystem *systems.TextInputRenderSystem

	inputs []ecs.EntityID
	status string

	pendingWindowSizeReset   bool
	windowSizeResetCountdown int
}

// NewApp 创建并初始化演示程序
//
// 未指定 ConfigPath 时，调用此函数前必须先调用 embedded.Init()。
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	presets, err := LoadPresets(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("加载预设失败: %w", err)
	}

	store, err := persist.OpenTextInputStore(cfg.AppName)
	if err != nil {
		log.Printf("[App] Warning: %v (内容不会保存到磁盘)", err)
	}

	if cfg.ExportDir != "" {
		if err := utils.EnsureWritableDir(cfg.ExportDir); err != nil {
			return nil, fmt.Errorf("导出目录不可用: %w", err)
		}
	}

	return newApp(presets, store, cfg.ExportDir)
}

func newApp(presets *config.TextInputConfigFile, store *persist.TextInputStore, exportDir string) (*App, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("加载字体失败: %w", err)
	}

	em := ecs.NewEntityManager()
	a := &App{
		entityManager:   em,
		store:           store,
		fontSource:      src,
		faces:           make(map[float64]*text.GoTextFace),
		labelFace:       &text.GoTextFace{Source: src, Size: labelSize},
		exportDir:       exportDir,
		textInputSystem: systems.NewTextInputSystem(em),
	}
	a.textInputRenderSystem = systems.NewTextInputRenderSystem(em, a.faceForSize(config.DefaultInputFontSize))

	border := newBorderImage()
	y := marginY
	for i := range presets.Inputs {
		cfg := &presets.Inputs[i]
		id, err := entities.NewTextInputEntityWithOptions(em, cfg, marginX, y+labelSize+4, entities.TextInputOptions{
			BorderImage: border,
			Face:        a.faceForSize(cfg.FontSize),
			Focused:     i == 0,
			OnSubmit:    a.submitHandler(cfg.ID),
		})
		if err != nil {
			return nil, fmt.Errorf("创建输入框 %q 失败: %w", cfg.ID, err)
		}
		a.inputs = append(a.inputs, id)

		input, _ := ecs.GetComponent[*components.TextInputComponent](em, id)
		if ok, err := store.RestoreEditor(cfg.ID, input.Editor); err != nil {
			log.Printf("[App] Warning: 恢复 %q 失败: %v", cfg.ID, err)
		} else if ok {
			log.Printf("[App] 已恢复 %q", cfg.ID)
		}

		y += labelSize + 4 + cfg.Height + rowGap
	}

	return a, nil
}

// faceForSize 返回指定字号的输入框字体，同一字号的输入框共用一个 Face
func (a *App) faceForSize(size float64) *text.GoTextFace {
	if size <= 0 {
		size = config.DefaultInputFontSize
	}
	if f, ok := a.faces[size]; ok {
		return f
	}
	f := &text.GoTextFace{Source: a.fontSource, Size: size}
	a.faces[size] = f
	return f
}

// LoadPresets 读取输入框预设，path 为空时读取嵌入的默认预设
func LoadPresets(path string) (*config.TextInputConfigFile, error) {
	if path != "" {
		return config.LoadTextInputConfigs(path)
	}
	data, err := embedded.ReadFile(PresetsPath)
	if err != nil {
		return nil, fmt.Errorf("读取内置预设失败: %w", err)
	}
	return config.ParseTextInputConfigs(data)
}

func (a *App) submitHandler(id string) func(string) {
	return func(s string) {
		a.status = fmt.Sprintf("%s: %q", id, s)
		a.SaveAll()
	}
}

// SaveAll 保存所有输入框内容，并按需导出到 exportDir
func (a *App) SaveAll() {
	for _, id := range a.inputs {
		input, ok := ecs.GetComponent[*components.TextInputComponent](a.entityManager, id)
		if !ok {
			continue
		}
		if err := a.store.SaveEditor(input.ConfigID, input.Editor); err != nil {
			log.Printf("[App] Warning: 保存 %q 失败: %v", input.ConfigID, err)
		}
		if a.exportDir != "" {
			a.export(input)
		}
	}
}

func (a *App) export(input *components.TextInputComponent) {
	data := persist.Capture(input.Editor)
	base := filepath.Join(a.exportDir, input.ConfigID)

	if err := persist.SaveBinaryFile(base+".sav", data); err != nil {
		log.Printf("[App] Warning: %v", err)
	}

	f, err := os.Create(base + ".xml")
	if err != nil {
		log.Printf("[App] Warning: %v", err)
		return
	}
	defer f.Close()
	if err := persist.SaveXML(f, data); err != nil {
		log.Printf("[App] Warning: 导出 %s.xml 失败: %v", base, err)
	}
}

// Update 更新演示逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(WindowWidth, WindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		a.SaveAll()
		return ebiten.Termination
	}

	if ebiten.IsKeyPressed(ebiten.KeyControl) && inpututil.IsKeyJustPressed(ebiten.KeyS) {
		a.SaveAll()
		a.status = "saved"
		return nil
	}

	a.updateCursorShape()
	a.textInputSystem.Update(1.0 / 60.0)
	a.entityManager.RemoveMarkedEntities()
	return nil
}

// updateCursorShape 指针悬停在输入框上时显示文本光标
func (a *App) updateCursorShape() {
	px, py := utils.GetPointerPosition()
	if _, ok := a.inputAt(float64(px), float64(py)); ok {
		ebiten.SetCursorShape(ebiten.CursorShapeText)
	} else {
		ebiten.SetCursorShape(ebiten.CursorShapeDefault)
	}
}

// inputAt 返回包含点 (x, y) 的输入框
func (a *App) inputAt(x, y float64) (ecs.EntityID, bool) {
	for _, id := range a.inputs {
		input, ok := ecs.GetComponent[*components.TextInputComponent](a.entityManager, id)
		if !ok {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](a.entityManager, id)
		if utils.PointInRect(x, y, pos.X, pos.Y, input.Width, input.Height) {
			return id, true
		}
	}
	return 0, false
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 25, G: 25, B: 60, A: 255})

	for _, id := range a.inputs {
		input, ok := ecs.GetComponent[*components.TextInputComponent](a.entityManager, id)
		if !ok {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](a.entityManager, id)
		a.drawLabel(screen, input, pos.X, pos.Y-labelSize-4)
	}

	a.textInputRenderSystem.Draw(screen)

	op := &text.DrawOptions{}
	op.GeoM.Translate(marginX, WindowHeight-marginY)
	op.ColorScale.ScaleWithColor(color.RGBA{200, 200, 200, 255})
	text.Draw(screen, "Click: focus   Enter: submit   Ctrl+S: save   Esc: save and quit   "+a.status, a.labelFace, op)
}

func (a *App) drawLabel(screen *ebiten.Image, input *components.TextInputComponent, x, y float64) {
	line, col := input.Editor.CaretLineColumn()
	label := fmt.Sprintf("%s  (%d/%d, line %d col %d)", input.ConfigID, input.Editor.Len(), input.Editor.MaxLength(), line+1, col+1)

	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(color.RGBA{220, 220, 160, 255})
	text.Draw(screen, label, a.labelFace, op)
}

// newBorderImage 生成输入框边框图片：浅色描边、深色底，左右各 borderEdge 像素不拉伸
func newBorderImage() *ebiten.Image {
	const w, h = borderEdge*2 + 4, 16
	img := ebiten.NewImage(w, h)
	img.Fill(color.RGBA{220, 180, 60, 255})
	inner := ebiten.NewImage(w-4, h-4)
	inner.Fill(color.RGBA{10, 10, 30, 255})
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(2, 2)
	img.DrawImage(inner, op)
	return img
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口，全屏时使用线性滤波缩放
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return WindowWidth, WindowHeight
}

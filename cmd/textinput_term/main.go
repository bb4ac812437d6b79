// Package main 终端文本输入演示
//
// 用法:
//
//	go run ./cmd/textinput_term [-multiline] [-max 200] [-config presets.yaml -id notes] [-save notes.sav]
//
// 功能:
//   - 在终端中编辑单行或多行文本，光标上下移动按字符单元格对齐
//   - Esc 或 Ctrl+C 退出，指定 -save 时退出前保存、启动时恢复
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/decker502/textkit/internal/textedit"
	"github.com/decker502/textkit/pkg/config"
	"github.com/decker502/textkit/pkg/persist"
	"github.com/decker502/textkit/pkg/utils"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

const (
	originX = 2
	originY = 2
)

var keyIntents = map[tcell.Key]textedit.IntentKind{
	tcell.KeyBackspace:  textedit.IntentBackspace,
	tcell.KeyBackspace2: textedit.IntentBackspace,
	tcell.KeyDelete:     textedit.IntentDelete,
	tcell.KeyLeft:       textedit.IntentLeft,
	tcell.KeyRight:      textedit.IntentRight,
	tcell.KeyUp:         textedit.IntentUp,
	tcell.KeyDown:       textedit.IntentDown,
	tcell.KeyHome:       textedit.IntentHome,
	tcell.KeyEnd:        textedit.IntentEnd,
	tcell.KeyEnter:      textedit.IntentNewline,
}

// intentForKey 把按键事件转换为编辑意图
func intentForKey(ev *tcell.EventKey) (textedit.Intent, bool) {
	if ev.Key() == tcell.KeyRune {
		return textedit.Insert(ev.Rune()), true
	}
	if kind, ok := keyIntents[ev.Key()]; ok {
		return textedit.Key(kind), true
	}
	return textedit.Intent{}, false
}

// drawLine 从 (x, y) 开始按字素簇绘制一行，返回占用的单元格数
func drawLine(screen tcell.Screen, x, y int, line string, style tcell.Style) int {
	col := 0
	g := uniseg.NewGraphemes(line)
	for g.Next() {
		runes := g.Runes()
		screen.SetContent(x+col, y, runes[0], runes[1:], style)
		col += uniseg.StringWidth(g.Str())
	}
	return col
}

func draw(screen tcell.Screen, editor *textedit.Editor, oracle textedit.GlyphOracle, status string) {
	screen.Clear()
	plain := tcell.StyleDefault
	dim := plain.Foreground(tcell.ColorGray)

	drawLine(screen, originX, 0, fmt.Sprintf("%d/%d runes  %s", editor.Len(), editor.MaxLength(), status), dim)
	for i, line := range editor.Lines() {
		drawLine(screen, originX, originY+i, line, plain)
	}

	line, _ := editor.CaretLineColumn()
	x, err := oracle.XPositionOf(editor.CaretIndex())
	if err != nil {
		x = 0
	}
	screen.ShowCursor(originX+int(x), originY+line)
	screen.Show()
}

func loadOptions(path, id string, multiline bool, maxLength int) (textedit.EditorOptions, error) {
	if path == "" {
		f := textedit.DefaultFilters()
		f.Newline = multiline
		return textedit.EditorOptions{Filters: f, MaxLength: maxLength}, nil
	}

	presets, err := config.LoadTextInputConfigs(path)
	if err != nil {
		return textedit.EditorOptions{}, err
	}
	cfg, ok := presets.Find(id)
	if !ok {
		return textedit.EditorOptions{}, fmt.Errorf("preset %q not found in %s", id, path)
	}
	return cfg.EditorOptions(), nil
}

func run() error {
	multiline := flag.Bool("multiline", false, "允许换行")
	maxLength := flag.Int("max", 0, "最大字符数，0 表示不限制")
	presetPath := flag.String("config", "", "输入框预设 YAML 文件")
	presetID := flag.String("id", "", "使用的预设 ID（配合 -config）")
	savePath := flag.String("save", "", "保存文件（gob 格式）")
	flag.Parse()

	opts, err := loadOptions(*presetPath, *presetID, *multiline, *maxLength)
	if err != nil {
		return err
	}
	editor := textedit.NewEditor(opts)
	oracle := &utils.MonospaceOracle{Buffer: editor.Buffer()}
	editor.SetOracle(oracle)

	if *savePath != "" {
		data, err := persist.LoadBinaryFile(*savePath)
		switch {
		case err == nil:
			if err := data.Restore(editor); err != nil {
				return err
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return err
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	status := "Esc: quit"
	for {
		draw(screen, editor, oracle, status)

		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
				if *savePath != "" {
					return persist.SaveBinaryFile(*savePath, persist.Capture(editor))
				}
				return nil
			}
			if in, ok := intentForKey(ev); ok {
				if !editor.Apply(in) && in.Kind == textedit.IntentInsert {
					status = fmt.Sprintf("rejected %q", in.Rune)
				} else {
					status = "Esc: quit"
				}
			}
		}
	}
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

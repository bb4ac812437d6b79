package main

import (
	"flag"
	"log"

	"github.com/decker502/textkit/pkg/app"
	"github.com/decker502/textkit/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

const appName = "textkit_demo"

func main() {
	verboseFlag := flag.Bool("verbose", false, "启用详细日志输出")
	configFlag := flag.String("config", "", "输入框预设 YAML 文件（默认使用内置预设）")
	exportFlag := flag.String("export", "", "保存时额外导出 .sav 和 .xml 文件的目录")
	flag.Parse()

	embedded.Init(assetsFS)

	demo, err := app.NewApp(app.Config{
		Verbose:    *verboseFlag,
		AppName:    appName,
		ConfigPath: *configFlag,
		ExportDir:  *exportFlag,
	})
	if err != nil {
		log.Fatalf("创建演示程序失败: %v", err)
	}

	ebiten.SetWindowSize(app.WindowWidth, app.WindowHeight)
	ebiten.SetWindowTitle("textkit - Text Input Demo")

	if err := ebiten.RunGame(demo); err != nil {
		log.Fatal(err)
	}
}

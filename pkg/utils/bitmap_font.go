package utils

import (
	"fmt"
	"image"
	_ "image/png"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// BitmapFont 位图字体：一张字形图集加一份描述字符、宽度和矩形的元数据
type BitmapFont struct {
	Image      *ebiten.Image     // 字体图集
	CharMap    map[rune]CharInfo // 字符 → 字符信息
	LineHeight int               // 行高（像素）
}

// CharInfo 单个字符的信息
type CharInfo struct {
	Rect  image.Rectangle // 字符在图集中的矩形区域
	Width int             // 前进宽度（像素）
}

const defaultBitmapLineHeight = 16

var (
	charListRe = regexp.MustCompile(`(?s)Define CharList\s*\(\s*(.+?)\);`)
	quotedRe   = regexp.MustCompile(`'([^']*)'`)
	rectListRe = regexp.MustCompile(`Define RectList\s*\(\s*([^;]+)\);`)
	rectRe     = regexp.MustCompile(`\(\s*(\d+),\s*(\d+),\s*(\d+),\s*(\d+)\)`)
)

// LoadBitmapFont 从 PNG 图集和元数据文件加载位图字体
func LoadBitmapFont(imagePath, metaPath string) (*BitmapFont, error) {
	img, err := loadImage(imagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load font image: %w", err)
	}

	meta, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read font meta: %w", err)
	}

	return ParseBitmapFont(img, meta)
}

// ParseBitmapFont 用已加载的图集和元数据内容构建字体，img 可以为 nil（仅用于测量）
//
// 元数据格式：
//
//	Define CharList ('A', 'B', ...);
//	Define WidthList (10, 12, ...);
//	Define RectList ((x, y, w, h), ...);
//
// WidthList 与 RectList 可以比 CharList 多出开头的一项（空字符），会被丢弃。
func ParseBitmapFont(img *ebiten.Image, meta []byte) (*BitmapFont, error) {
	content := string(meta)

	chars, err := parseCharList(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse CharList: %w", err)
	}
	widths, err := parseIntList(content, "WidthList")
	if err != nil {
		return nil, fmt.Errorf("failed to parse WidthList: %w", err)
	}
	rects, err := parseRectList(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse RectList: %w", err)
	}

	if len(widths) == len(chars)+1 && len(rects) == len(chars)+1 {
		widths = widths[1:]
		rects = rects[1:]
	}
	if len(chars) != len(widths) || len(chars) != len(rects) {
		return nil, fmt.Errorf("inconsistent font data: chars=%d, widths=%d, rects=%d",
			len(chars), len(widths), len(rects))
	}

	charMap := make(map[rune]CharInfo, len(chars))
	lineHeight := 0
	for i, r := range chars {
		charMap[r] = CharInfo{Rect: rects[i], Width: widths[i]}
		if h := rects[i].Dy(); h > lineHeight {
			lineHeight = h
		}
	}
	if lineHeight == 0 {
		lineHeight = defaultBitmapLineHeight
	}

	return &BitmapFont{Image: img, CharMap: charMap, LineHeight: lineHeight}, nil
}

// DrawText 从 (x, y) 开始绘制一行文本，缺失的字符跳过且不占宽度
func (bf *BitmapFont) DrawText(screen *ebiten.Image, s string, x, y float64) {
	if bf.Image == nil {
		return
	}
	cx := x
	for _, r := range s {
		info, ok := bf.CharMap[r]
		if !ok {
			continue
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(cx, y)
		screen.DrawImage(bf.Image.SubImage(info.Rect).(*ebiten.Image), op)
		cx += float64(info.Width)
	}
}

// MeasureText 测量文本宽度（像素）
func (bf *BitmapFont) MeasureText(s string) int {
	total := 0
	for _, r := range s {
		if info, ok := bf.CharMap[r]; ok {
			total += info.Width
		}
	}
	return total
}

func loadImage(path string) (*ebiten.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, err
	}
	return ebiten.NewImageFromImage(img), nil
}

func parseCharList(content string) ([]rune, error) {
	m := charListRe.FindStringSubmatch(content)
	if len(m) < 2 {
		return nil, fmt.Errorf("CharList not found")
	}

	quoted := quotedRe.FindAllStringSubmatch(m[1], -1)
	chars := make([]rune, 0, len(quoted))
	for _, q := range quoted {
		if q[1] == "" {
			// 空引号表示空格
			chars = append(chars, ' ')
			continue
		}
		chars = append(chars, []rune(q[1])[0])
	}
	return chars, nil
}

func parseIntList(content, name string) ([]int, error) {
	re := regexp.MustCompile(`(?s)` + regexp.QuoteMeta(name) + `\s*\(\s*(.+?)\);`)
	m := re.FindStringSubmatch(content)
	if len(m) < 2 {
		return nil, fmt.Errorf("%s not found", name)
	}

	parts := strings.Split(m[1], ",")
	ints := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q: %w", p, err)
		}
		ints = append(ints, v)
	}
	return ints, nil
}

func parseRectList(content string) ([]image.Rectangle, error) {
	m := rectListRe.FindStringSubmatch(content)
	if len(m) < 2 {
		return nil, fmt.Errorf("RectList not found")
	}

	found := rectRe.FindAllStringSubmatch(m[1], -1)
	rects := make([]image.Rectangle, 0, len(found))
	for _, f := range found {
		x, _ := strconv.Atoi(f[1])
		y, _ := strconv.Atoi(f[2])
		w, _ := strconv.Atoi(f[3])
		h, _ := strconv.Atoi(f[4])
		rects = append(rects, image.Rect(x, y, x+w, y+h))
	}
	return rects, nil
}

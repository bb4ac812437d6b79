package embedded

import (
	"errors"
	"io"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// 真正的资源嵌入在项目根目录的 embed.go 中。这里使用 fstest.MapFS 代替。
func testFS() fstest.MapFS {
	return fstest.MapFS{
		"assets/config/text_inputs.yaml": {Data: []byte("inputs: []\n")},
		"assets/config/extra.yaml":       {Data: []byte("inputs: []\n")},
		"assets/images/border.png":       {Data: []byte{0x89, 'P', 'N', 'G'}},
	}
}

func reset() {
	assetsFS = nil
	initialized = false
}

// TestIsInitialized 测试初始化状态检测
func TestIsInitialized(t *testing.T) {
	reset()
	defer reset()

	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}

	Init(testFS())
	if !IsInitialized() {
		t.Error("Expected IsInitialized() to return true after Init()")
	}

	Init(nil)
	if IsInitialized() {
		t.Error("Init(nil) should leave the package uninitialized")
	}
}

// TestNotInitialized 测试未初始化时的所有访问函数
func TestNotInitialized(t *testing.T) {
	reset()

	if _, err := Open("assets/config/text_inputs.yaml"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Open() error = %v, want ErrNotInitialized", err)
	}
	if _, err := ReadFile("assets/config/text_inputs.yaml"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("ReadFile() error = %v, want ErrNotInitialized", err)
	}
	if _, err := Glob("assets/config/*.yaml"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Glob() error = %v, want ErrNotInitialized", err)
	}
	// Exists 在未初始化时应返回 false（因为内部调用 Open 会出错）
	if Exists("assets/config/text_inputs.yaml") {
		t.Error("Expected Exists() to return false before Init()")
	}
}

// TestInvalidPrefix 测试无效路径前缀
func TestInvalidPrefix(t *testing.T) {
	Init(testFS())
	defer reset()

	want := "unknown resource path prefix: data/test.yaml (must start with 'assets/')"
	if _, err := Open("data/test.yaml"); err == nil || err.Error() != want {
		t.Errorf("Open() error = %v, want %q", err, want)
	}
	if _, err := ReadFile("data/test.yaml"); err == nil || err.Error() != want {
		t.Errorf("ReadFile() error = %v, want %q", err, want)
	}
	if Exists("data/test.yaml") {
		t.Error("Exists() should be false for an unknown prefix")
	}
}

// TestReadFile 测试读取文件和路径规范化
func TestReadFile(t *testing.T) {
	Init(testFS())
	defer reset()

	tests := []struct {
		name string
		path string
	}{
		{"plain", "assets/config/text_inputs.yaml"},
		{"dot slash prefix", "./assets/config/text_inputs.yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := ReadFile(tt.path)
			if err != nil {
				t.Fatalf("ReadFile(%q) error: %v", tt.path, err)
			}
			if diff := cmp.Diff("inputs: []\n", string(data)); diff != "" {
				t.Errorf("content mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if _, err := ReadFile("assets/missing.yaml"); err == nil {
		t.Error("Expected error for missing file")
	}
}

// TestOpen 测试打开文件
func TestOpen(t *testing.T) {
	Init(testFS())
	defer reset()

	f, err := Open("assets/images/border.png")
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("read error: %v", err)
	}
	if len(data) != 4 {
		t.Errorf("read %d bytes, want 4", len(data))
	}

	if !Exists("assets/images/border.png") {
		t.Error("Exists() should be true for an embedded file")
	}
	if Exists("assets/images/missing.png") {
		t.Error("Exists() should be false for a missing file")
	}
}

// TestGlob 测试文件匹配
func TestGlob(t *testing.T) {
	Init(testFS())
	defer reset()

	got, err := Glob("assets/config/*.yaml")
	if err != nil {
		t.Fatalf("Glob() error: %v", err)
	}
	want := []string{"assets/config/extra.yaml", "assets/config/text_inputs.yaml"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Glob() mismatch (-want +got):\n%s", diff)
	}
}

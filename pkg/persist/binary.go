package persist

import (
	"encoding/gob"
	"fmt"
	"io"
	"log"
	"os"
)

// SaveBinary 以 gob 格式写出存档
func SaveBinary(w io.Writer, data *TextInputData) error {
	if data == nil {
		return fmt.Errorf("text input data is nil")
	}
	if err := gob.NewEncoder(w).Encode(data); err != nil {
		return fmt.Errorf("failed to encode text input data: %w", err)
	}
	return nil
}

// LoadBinary 读取 gob 格式存档并检查版本
func LoadBinary(r io.Reader) (*TextInputData, error) {
	var data TextInputData
	if err := gob.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode text input data: %w", err)
	}
	if err := data.CheckVersion(); err != nil {
		return nil, err
	}
	return &data, nil
}

// SaveBinaryFile 把存档写入文件
func SaveBinaryFile(path string, data *TextInputData) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create save file: %w", err)
	}
	defer file.Close()

	if err := SaveBinary(file, data); err != nil {
		return err
	}

	log.Printf("[TextInputSerializer] Saved %d runes to %s", len([]rune(data.Text)), path)
	return nil
}

// LoadBinaryFile 从文件读取存档
func LoadBinaryFile(path string) (*TextInputData, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open save file: %w", err)
	}
	defer file.Close()

	data, err := LoadBinary(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	log.Printf("[TextInputSerializer] Loaded %d runes from %s", len([]rune(data.Text)), path)
	return data, nil
}

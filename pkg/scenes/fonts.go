package scenes

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gonewx/scrollstage/pkg/visual"
)

// Fonts 页面使用的字体（Go 字体家族，随程序编译，无需外部资源）
type Fonts struct {
	source *text.GoTextFaceSource
	faces  map[float64]*text.GoTextFace
}

// LoadFonts 加载字体
func LoadFonts() (*Fonts, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to create font source: %w", err)
	}
	return &Fonts{source: source, faces: make(map[float64]*text.GoTextFace)}, nil
}

// Face 返回指定字号的字体，按字号缓存
func (f *Fonts) Face(size float64) *text.GoTextFace {
	if face, ok := f.faces[size]; ok {
		return face
	}
	face := &text.GoTextFace{Source: f.source, Size: size}
	f.faces[size] = face
	return face
}

// FaceFor 返回元素类型对应的字体；不显示文字的类型返回 nil
func (f *Fonts) FaceFor(kind string) *text.GoTextFace {
	size, ok := visual.FontSize(kind)
	if !ok {
		return nil
	}
	return f.Face(size)
}

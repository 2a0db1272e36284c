package icon

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, c color.Color) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func testAssets(t *testing.T) fstest.MapFS {
	return fstest.MapFS{
		"clear-day.png": {Data: pngBytes(t, color.NRGBA{R: 0xff, G: 0xcc, A: 0xff})},
		"rain.png":      {Data: pngBytes(t, color.NRGBA{B: 0xff, A: 0xff})},
		"broken.png":    {Data: []byte("not a png")},
		"3200.png":      {Data: pngBytes(t, color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff})},
		"snow.png/x":    {Data: []byte("directory, not a file")},
	}
}

func TestResolve(t *testing.T) {
	r := NewResolver(testAssets(t), "")

	tests := []struct {
		code string
		want string
	}{
		{"clear-day", "clear-day.png"},
		{"  rain ", "rain.png"},
		{"fog", DefaultFallback},
		{"", DefaultFallback},
		{"   ", DefaultFallback},
		{"../clear-day", DefaultFallback},
		{"sub/clear-day", DefaultFallback},
		{`..\clear-day`, DefaultFallback},
		{"snow", DefaultFallback},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, r.Resolve(tt.code), "Resolve(%q)", tt.code)
	}
}

func TestResolve_NilAssetsFallsBack(t *testing.T) {
	r := NewResolver(nil, "custom.png")
	assert.Equal(t, "custom.png", r.Resolve("clear-day"))
	assert.Equal(t, "custom.png", r.Fallback())
}

func TestLoad(t *testing.T) {
	r := NewResolver(testAssets(t), DefaultFallback)

	img, name, err := r.Load("clear-day.png")
	require.NoError(t, err)
	assert.Equal(t, "clear-day.png", name)
	assert.Equal(t, 4, img.Bounds().Dx())

	img, name, err = r.Load("broken.png")
	require.NoError(t, err)
	assert.Equal(t, DefaultFallback, name)
	require.NotNil(t, img)
}

func TestLoad_FallbackMissing(t *testing.T) {
	r := NewResolver(fstest.MapFS{}, DefaultFallback)

	_, name, err := r.Load("clear-day.png")
	require.Error(t, err)
	assert.Equal(t, DefaultFallback, name)

	_, _, err = r.Load(DefaultFallback)
	require.Error(t, err)
}

func TestRender_FixedBox(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	img.Set(0, 0, color.NRGBA{R: 0xff, A: 0xff})

	out := Render(img, 6, 3, "#000000")
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	for _, line := range lines {
		assert.Equal(t, 6, lipgloss.Width(line))
	}
	assert.Contains(t, out, upperHalf)
}

func TestRender_NilImageAndEmptyBox(t *testing.T) {
	out := Render(nil, 4, 2, "#000000")
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, 4, lipgloss.Width(lines[0]))

	assert.Empty(t, Render(nil, 0, 2, "#000000"))
}

func TestHexOrBackground(t *testing.T) {
	assert.Equal(t, "#ff0080", hexOrBackground(color.NRGBA{R: 0xff, B: 0x80, A: 0xff}, "#111111"))
	assert.Equal(t, "#111111", hexOrBackground(color.NRGBA{R: 0xff, A: 0x10}, "#111111"))
}

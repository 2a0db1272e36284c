package icon

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// upperHalf draws the top pixel in the foreground and the bottom pixel in
// the background, giving two vertical pixels per cell.
const upperHalf = "▀"

// Render draws img into a box of cols×rows cells using nearest-neighbour
// sampling. Pixels that are mostly transparent take bg. A nil image renders
// an empty box of the same size.
func Render(img image.Image, cols, rows int, bg string) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}
	blank := lipgloss.NewStyle().Background(lipgloss.Color(bg)).Render(strings.Repeat(" ", cols))
	lines := make([]string, rows)
	if img == nil {
		for i := range lines {
			lines[i] = blank
		}
		return strings.Join(lines, "\n")
	}

	b := img.Bounds()
	pxRows := rows * 2
	sample := func(x, y int) string {
		sx := b.Min.X + x*b.Dx()/cols
		sy := b.Min.Y + y*b.Dy()/pxRows
		return hexOrBackground(img.At(sx, sy), bg)
	}

	var sb strings.Builder
	for row := 0; row < rows; row++ {
		sb.Reset()
		for col := 0; col < cols; col++ {
			top := sample(col, row*2)
			bottom := sample(col, row*2+1)
			sb.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(top)).
				Background(lipgloss.Color(bottom)).
				Render(upperHalf))
		}
		lines[row] = sb.String()
	}
	return strings.Join(lines, "\n")
}

func hexOrBackground(c color.Color, bg string) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A < 0x80 {
		return bg
	}
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}

package screen

import (
	"os"
	"strings"
)

// ColorMode indicates terminal color capability
type ColorMode uint8

const (
	ColorMode256       ColorMode = iota // xterm-256 palette
	ColorModeTrueColor                  // 24-bit RGB
)

// RGB represents a 24-bit color
type RGB struct {
	R, G, B uint8
}

// RGBBlack is the zero value black color
var RGBBlack = RGB{0, 0, 0}

// Color cube levels for the 6x6x6 palette (indices 16-231)
var cubeValues = [6]uint8{0, 95, 135, 175, 215, 255}

// grayscale ramp starts at index 232 (24 shades, luminance 8..238)
const grayscaleStart = 232

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// nearestCube maps a channel value to the nearest cube level index
func nearestCube(v uint8) uint8 {
	best := 0
	bestDist := abs(int(v) - int(cubeValues[0]))
	for i := 1; i < 6; i++ {
		d := abs(int(v) - int(cubeValues[i]))
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return uint8(best)
}

// RGBTo256 converts an RGB value to the nearest 256-color palette index.
// Near-gray colors are matched against the grayscale ramp as well as the
// color cube, whichever is closer.
func RGBTo256(c RGB) uint8 {
	cr, cg, cb := nearestCube(c.R), nearestCube(c.G), nearestCube(c.B)
	cubeIdx := 16 + 36*cr + 6*cg + cb
	cubeDist := abs(int(c.R)-int(cubeValues[cr])) +
		abs(int(c.G)-int(cubeValues[cg])) +
		abs(int(c.B)-int(cubeValues[cb]))

	gray := (int(c.R) + int(c.G) + int(c.B)) / 3
	maxDiff := max(abs(int(c.R)-gray), abs(int(c.G)-gray), abs(int(c.B)-gray))
	if maxDiff >= 10 {
		return cubeIdx
	}

	if gray < 4 {
		return 16 // cube black
	}
	if gray > 243 {
		return 231 // cube white
	}
	grayIdx := grayscaleStart + (gray-8)/10
	if grayIdx > 255 {
		grayIdx = 255
	}
	grayLevel := 8 + (grayIdx-grayscaleStart)*10
	grayDist := abs(int(c.R)-grayLevel) + abs(int(c.G)-grayLevel) + abs(int(c.B)-grayLevel)
	if grayDist < cubeDist {
		return uint8(grayIdx)
	}
	return cubeIdx
}

// DetectColorMode determines terminal color capability from environment
func DetectColorMode() ColorMode {
	colorterm := os.Getenv("COLORTERM")
	if colorterm == "truecolor" || colorterm == "24bit" {
		return ColorModeTrueColor
	}

	if os.Getenv("KITTY_WINDOW_ID") != "" ||
		os.Getenv("KONSOLE_VERSION") != "" ||
		os.Getenv("ITERM_SESSION_ID") != "" ||
		os.Getenv("ALACRITTY_WINDOW_ID") != "" ||
		os.Getenv("WEZTERM_PANE") != "" {
		return ColorModeTrueColor
	}

	term := os.Getenv("TERM")
	if strings.Contains(term, "truecolor") ||
		strings.Contains(term, "24bit") ||
		strings.Contains(term, "direct") {
		return ColorModeTrueColor
	}

	return ColorMode256
}

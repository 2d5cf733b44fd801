package view

import "image/color"

var (
	colBackground  = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	colWindow      = color.RGBA{R: 12, G: 12, B: 16, A: 255}
	colBoundary    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colClaimedFast = color.RGBA{R: 0x3c, G: 0xff, B: 0x8f, A: 255}
	colClaimedSlow = color.RGBA{R: 0xff, G: 0x8a, B: 0x00, A: 255}
	colActiveLine  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colMarker      = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colMarkerDraw  = color.RGBA{R: 255, G: 80, B: 80, A: 255}
	colQix         = color.RGBA{R: 0x7a, G: 0xff, B: 0xff, A: 255}
	colSparx       = color.RGBA{R: 0xff, G: 0xc7, B: 0x00, A: 255}
	colHUDText     = color.RGBA{R: 230, G: 230, B: 230, A: 255}
	colHUDDim      = color.RGBA{R: 140, G: 140, B: 150, A: 255}
	colBanner      = color.RGBA{R: 0, G: 0, B: 0, A: 190}
)

package server

import (
	"image"
	"image/png"
	"io"
)

var pngEncoder = png.Encoder{CompressionLevel: png.BestSpeed}

func encodePNG(w io.Writer, img image.Image) error {
	return pngEncoder.Encode(w, img)
}

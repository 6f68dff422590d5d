package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
)

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

const tgaHeaderSize = 18

var errTGATruncated = errors.New("TGA data truncated")

func init() {
	// TGA has no magic number; match on an empty ID field, no color map and
	// a true-color image type.
	image.RegisterFormat("tga", "\x00\x00\x02", decodeTGAReader, decodeTGAConfig)
	image.RegisterFormat("tga", "\x00\x00\x0a", decodeTGAReader, decodeTGAConfig)
}

type tgaHeader struct {
	idLength     int
	colorMapType byte
	imageType    byte
	width        int
	height       int
	bpp          int
	topToBottom  bool // bit 5 of the descriptor
}

func parseTGAHeader(data []byte) (tgaHeader, error) {
	if len(data) < tgaHeaderSize {
		return tgaHeader{}, fmt.Errorf("TGA data too short")
	}
	h := tgaHeader{
		idLength:     int(data[0]),
		colorMapType: data[1],
		imageType:    data[2],
		width:        int(data[12]) | int(data[13])<<8,
		height:       int(data[14]) | int(data[15])<<8,
		bpp:          int(data[16]),
		topToBottom:  data[17]&0x20 != 0,
	}

	if h.colorMapType != 0 {
		return tgaHeader{}, fmt.Errorf("color-mapped TGA not supported")
	}
	if h.imageType != TGATypeUncompressed && h.imageType != TGATypeRLE {
		return tgaHeader{}, fmt.Errorf("unsupported TGA type %d (only uncompressed/RLE true-color supported)", h.imageType)
	}
	if h.bpp != 24 && h.bpp != 32 {
		return tgaHeader{}, fmt.Errorf("unsupported TGA bit depth %d (only 24/32 supported)", h.bpp)
	}
	return h, nil
}

// DecodeTGA decodes an uncompressed (type 2) or RLE compressed (type 10)
// true-color TGA image.
func DecodeTGA(data []byte) (image.Image, error) {
	h, err := parseTGAHeader(data)
	if err != nil {
		return nil, err
	}

	offset := tgaHeaderSize + h.idLength
	if offset > len(data) {
		return nil, errTGATruncated
	}
	pixelData := data[offset:]

	img := image.NewRGBA(image.Rect(0, 0, h.width, h.height))
	bytesPerPixel := h.bpp / 8

	if h.imageType == TGATypeUncompressed {
		if len(pixelData) < h.width*h.height*bytesPerPixel {
			return nil, errTGATruncated
		}
		for i := 0; i < h.width*h.height; i++ {
			setTGAPixel(img, h, i, readBGRA(pixelData[i*bytesPerPixel:], bytesPerPixel))
		}
		return img, nil
	}

	decodeTGARLE(img, h, pixelData, bytesPerPixel)
	return img, nil
}

// decodeTGARLE decodes RLE-compressed pixel data. Truncated data leaves the
// remaining pixels transparent.
func decodeTGARLE(img *image.RGBA, h tgaHeader, pixelData []byte, bytesPerPixel int) {
	pixelCount := h.width * h.height
	pixelIdx := 0
	dataIdx := 0

	for pixelIdx < pixelCount && dataIdx < len(pixelData) {
		packet := pixelData[dataIdx]
		dataIdx++
		count := int(packet&0x7F) + 1
		repeat := packet&0x80 != 0

		if repeat {
			if dataIdx+bytesPerPixel > len(pixelData) {
				return
			}
			c := readBGRA(pixelData[dataIdx:], bytesPerPixel)
			dataIdx += bytesPerPixel
			for i := 0; i < count && pixelIdx < pixelCount; i++ {
				setTGAPixel(img, h, pixelIdx, c)
				pixelIdx++
			}
			continue
		}

		for i := 0; i < count && pixelIdx < pixelCount; i++ {
			if dataIdx+bytesPerPixel > len(pixelData) {
				return
			}
			setTGAPixel(img, h, pixelIdx, readBGRA(pixelData[dataIdx:], bytesPerPixel))
			dataIdx += bytesPerPixel
			pixelIdx++
		}
	}
}

// readBGRA reads one BGR(A) pixel. 24-bit pixels are opaque.
func readBGRA(p []byte, bytesPerPixel int) color.RGBA {
	a := uint8(255)
	if bytesPerPixel == 4 {
		a = p[3]
	}
	return color.RGBA{R: p[2], G: p[1], B: p[0], A: a}
}

// setTGAPixel stores the idx-th pixel in file order, flipping bottom-up images.
func setTGAPixel(img *image.RGBA, h tgaHeader, idx int, c color.RGBA) {
	x := idx % h.width
	y := idx / h.width
	if !h.topToBottom {
		y = h.height - 1 - y
	}
	img.SetRGBA(x, y, c)
}

func decodeTGAReader(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return DecodeTGA(data)
}

func decodeTGAConfig(r io.Reader) (image.Config, error) {
	var header [tgaHeaderSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return image.Config{}, err
	}
	h, err := parseTGAHeader(header[:])
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{ColorModel: color.RGBAModel, Width: h.width, Height: h.height}, nil
}

// EncodeTGA writes img as an uncompressed 32-bit top-to-bottom TGA.
func EncodeTGA(img image.Image) []byte {
	b := img.Bounds()
	var buf bytes.Buffer
	header := make([]byte, tgaHeaderSize)
	header[2] = TGATypeUncompressed
	header[12], header[13] = byte(b.Dx()), byte(b.Dx()>>8)
	header[14], header[15] = byte(b.Dy()), byte(b.Dy()>>8)
	header[16] = 32
	header[17] = 0x20 | 8
	buf.Write(header)

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			buf.Write([]byte{c.B, c.G, c.R, c.A})
		}
	}
	return buf.Bytes()
}

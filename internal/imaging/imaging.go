// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imaging downscales uploaded images before they reach object
// storage. Images larger than the bounding box are resized with
// Catmull-Rom resampling and re-encoded as JPEG; smaller images pass
// through with only a re-encode for format normalization.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
)

const (
	// MaxWidth and MaxHeight bound stored images. Aspect ratio is
	// preserved; neither dimension exceeds its bound.
	MaxWidth  = 1200
	MaxHeight = 800

	jpegQuality = 85
)

// Result holds a processed image ready for upload.
type Result struct {
	Data        []byte
	ContentType string
	Width       int
	Height      int
}

// Process decodes src, downscales it to fit the bounding box, and
// returns the JPEG-encoded result. Non-image data fails decoding.
func Process(src []byte) (*Result, error) {
	img, _, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := fitWithin(bounds.Dx(), bounds.Dy(), MaxWidth, MaxHeight)

	if w != bounds.Dx() || h != bounds.Dy() {
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}

	return &Result{
		Data:        buf.Bytes(),
		ContentType: "image/jpeg",
		Width:       w,
		Height:      h,
	}, nil
}

// fitWithin scales (w, h) down to fit (maxW, maxH), preserving aspect
// ratio. Dimensions already within bounds are returned unchanged.
func fitWithin(w, h, maxW, maxH int) (int, int) {
	if w <= maxW && h <= maxH {
		return w, h
	}

	scaleW := float64(maxW) / float64(w)
	scaleH := float64(maxH) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}

	nw := int(float64(w) * scale)
	nh := int(float64(h) * scale)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	return nw, nh
}

package media

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"

	"github.com/BruksfildServices01/agenda-sync/internal/httperr"
)

const (
	maxProofEdge = 1280
	webpQuality  = 80
)

// ReencodeProof normalizes an uploaded payment-proof screenshot: decode
// (png/jpeg), cap the longest edge, re-encode as webp. Screenshots arrive
// at phone-camera sizes; this keeps stored proofs small and uniform.
func ReencodeProof(raw []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_image")
	}

	src = scaleDown(src, maxProofEdge)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, src, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, httperr.ErrBusiness("image_encode_failed")
	}
	return buf.Bytes(), nil
}

func scaleDown(src image.Image, maxEdge int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxEdge && h <= maxEdge {
		return src
	}

	if w >= h {
		h = h * maxEdge / w
		w = maxEdge
	} else {
		w = w * maxEdge / h
		h = maxEdge
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

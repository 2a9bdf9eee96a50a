package keyuri

import (
	"image"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
)

// Image renders the encoded provisioning URI as a QR code of the given
// dimensions, ready to be displayed for an authenticator app to scan.
func (k *Key) Image(width, height int) (image.Image, error) {
	uri, err := k.Encode()
	if err != nil {
		return nil, err
	}

	code, err := qr.Encode(uri, qr.M, qr.Auto)
	if err != nil {
		return nil, err
	}

	scaled, err := barcode.Scale(code, width, height)
	if err != nil {
		return nil, err
	}
	return scaled, nil
}

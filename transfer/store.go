package transfer

import "github.com/veea-project/snapcam/encoder"

// Store persists an encoded image to durable storage. Save returns
// the name the image was stored under.
type Store interface {
	Save(image []byte, format encoder.Format) (string, error)
}

// NullStore discards images. Used when no storage medium is
// configured.
type NullStore struct{}

func (NullStore) Save(image []byte, format encoder.Format) (string, error) {
	return "", nil
}

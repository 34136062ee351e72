// Package modelio persists a trained parameter vector and the DenseEncoder
// dimensions it was fit against, so cmd/crftrain and cmd/crftagd agree on
// theta's layout without re-deriving it from a training set at serve time.
//
// The wire format mirrors indexer.Save/Load: a length-prefixed version tag
// followed by fixed-width binary fields, over encoding/binary rather than a
// third-party codec. The format itself is the contract here, and no
// serialization library changes that.
package modelio

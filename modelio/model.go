package modelio

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

const wireVersion = "1.0"

// Weights is the persisted shape of a trained DenseEncoder: the
// predicate-space dimensions needed to reconstruct an
// objective.NewDenseEncoder call, plus the fitted parameter vector itself.
type Weights struct {
	NumNodePredicates int
	NumEdgePredicates int
	Theta             []float64
}

// Save writes w to out in this package's wire format: version tag, the two
// predicate counts, the theta length, then theta's entries in index order.
func Save(out io.Writer, w Weights) error {
	bw := bufio.NewWriter(out)
	if err := writeUTF(bw, wireVersion); err != nil {
		return fmt.Errorf("modelio.Save: %w", err)
	}
	if err := binary.Write(bw, binary.BigEndian, uint32(w.NumNodePredicates)); err != nil {
		return fmt.Errorf("modelio.Save: %w", err)
	}
	if err := binary.Write(bw, binary.BigEndian, uint32(w.NumEdgePredicates)); err != nil {
		return fmt.Errorf("modelio.Save: %w", err)
	}
	if err := binary.Write(bw, binary.BigEndian, uint32(len(w.Theta))); err != nil {
		return fmt.Errorf("modelio.Save: %w", err)
	}
	for i, v := range w.Theta {
		if err := binary.Write(bw, binary.BigEndian, v); err != nil {
			return fmt.Errorf("modelio.Save: writing theta[%d]: %w", i, err)
		}
	}

	return bw.Flush()
}

// Load reads a Weights value written by Save.
func Load(in io.Reader) (Weights, error) {
	br := bufio.NewReader(in)

	gotVersion, err := readUTF(br)
	if err != nil {
		return Weights{}, fmt.Errorf("modelio.Load: %w", err)
	}
	if gotVersion != wireVersion {
		return Weights{}, fmt.Errorf("modelio.Load: tag %q, want %q: %w", gotVersion, wireVersion, ErrVersionMismatch)
	}

	var numNode, numEdge, n uint32
	if err := binary.Read(br, binary.BigEndian, &numNode); err != nil {
		return Weights{}, fmt.Errorf("modelio.Load: reading node predicate count: %w", err)
	}
	if err := binary.Read(br, binary.BigEndian, &numEdge); err != nil {
		return Weights{}, fmt.Errorf("modelio.Load: reading edge predicate count: %w", err)
	}
	if err := binary.Read(br, binary.BigEndian, &n); err != nil {
		return Weights{}, fmt.Errorf("modelio.Load: reading theta length: %w", err)
	}

	theta := make([]float64, n)
	for i := range theta {
		if err := binary.Read(br, binary.BigEndian, &theta[i]); err != nil {
			return Weights{}, fmt.Errorf("modelio.Load: reading theta[%d]: %w", i, err)
		}
	}

	return Weights{
		NumNodePredicates: int(numNode),
		NumEdgePredicates: int(numEdge),
		Theta:             theta,
	}, nil
}

func writeUTF(w io.Writer, s string) error {
	if err := binary.Write(w, binary.BigEndian, uint16(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

func readUTF(r io.Reader) (string, error) {
	var n uint16
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

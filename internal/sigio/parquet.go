package sigio

import (
	"errors"
	"io"
	"os"

	parquet "github.com/parquet-go/parquet-go"
)

// Sample is the parquet row layout of a recording.
type Sample struct {
	Value float64 `parquet:"value"`
}

func loadParquet(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	gr := parquet.NewGenericReader[Sample](f)
	defer gr.Close()

	out := make([]float64, 0, gr.NumRows())
	batch := make([]Sample, 1024)
	for {
		n, err := gr.Read(batch)
		for _, s := range batch[:n] {
			out = append(out, s.Value)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func writeParquet(path string, x []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	rows := make([]Sample, len(x))
	for i, v := range x {
		rows[i].Value = v
	}

	pw := parquet.NewGenericWriter[Sample](f, parquet.Compression(&parquet.Snappy))
	if _, err := pw.Write(rows); err != nil {
		f.Close()
		return err
	}
	if err := pw.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

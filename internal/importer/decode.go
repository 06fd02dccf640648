// Package importer loads products in bulk: seed files with hosted image URLs
// and NDJSON exports whose images are local files to upload.
package importer

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	pgzip "github.com/klauspost/pgzip"

	"github.com/xenking/product-drawer/internal/domain/product"
)

const maxLineBytes = 1 << 20

// Row is one product to import. Image is a local file path or file:// URI
// for imports and a download URL for seeds.
type Row struct {
	Name         string
	Price        string
	OfferedPrice string
	Image        string
}

// Product returns the record the row describes, without its image URL.
func (r Row) Product() product.Product {
	return product.Product{
		Name:         r.Name,
		Price:        r.Price,
		OfferedPrice: r.OfferedPrice,
	}
}

// OpenRows reads rows from an NDJSON file, gunzipping it when the name ends
// in ".gz".
func OpenRows(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open rows")
	}
	defer func() { _ = f.Close() }()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := pgzip.NewReader(f)
		if err != nil {
			return nil, errors.Wrapf(err, "open gzip %s", path)
		}
		defer func() { _ = gz.Close() }()
		r = gz
	}
	return ReadRows(r)
}

// ReadRows decodes one JSON object per line. Blank lines are skipped.
func ReadRows(r io.Reader) ([]Row, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var (
		rows []Row
		line int
	)
	for sc.Scan() {
		line++
		data := sc.Bytes()
		if len(strings.TrimSpace(string(data))) == 0 {
			continue
		}
		row, err := decodeRow(jx.DecodeBytes(data))
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "scan rows")
	}
	return rows, nil
}

// ReadSeed decodes a JSON array of products.
func ReadSeed(r io.Reader) ([]Row, error) {
	var rows []Row
	if err := jx.Decode(r, 4096).Arr(func(d *jx.Decoder) error {
		row, err := decodeRow(d)
		if err != nil {
			return errors.Wrapf(err, "item %d", len(rows))
		}
		rows = append(rows, row)
		return nil
	}); err != nil {
		return nil, errors.Wrap(err, "decode seed")
	}
	return rows, nil
}

func decodeRow(d *jx.Decoder) (Row, error) {
	var row Row
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "name":
			row.Name, err = d.Str()
		case "price":
			row.Price, err = decodeAmount(d)
		case "offeredPrice":
			row.OfferedPrice, err = decodeAmount(d)
		case "image", "imageUrl":
			row.Image, err = d.Str()
		default:
			err = d.Skip()
		}
		return err
	})
	return row, err
}

// decodeAmount accepts prices written as strings or numbers.
func decodeAmount(d *jx.Decoder) (string, error) {
	switch t := d.Next(); t {
	case jx.String:
		return d.Str()
	case jx.Number:
		n, err := d.Num()
		if err != nil {
			return "", err
		}
		return n.String(), nil
	case jx.Null:
		return "", d.Null()
	default:
		return "", errors.Errorf("unexpected %s for amount", t)
	}
}

package dataset

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/pointml/pkg/errors"
	"github.com/YuminosukeSato/pointml/pkg/log"
)

// fieldsPerLine is the fixed row width: two features and a target.
const fieldsPerLine = 3

// Load reads a dataset from the file at path.
func Load(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	ds, err := Read(f)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}

	log.GetLoggerWithName("dataset").Debug("Dataset loaded",
		log.OperationKey, log.OperationLoad,
		log.PathKey, path,
		log.SamplesKey, len(ds),
	)
	return ds, nil
}

// Read parses one sample per line. Each line must hold exactly three comma
// separated numbers; the third field may carry surrounding whitespace.
// Blank lines are not samples. Any malformed line aborts the read with a
// *errors.ParseError.
func Read(r io.Reader) (Dataset, error) {
	var ds Dataset
	err := readRows(r, func(line int, rec []string) error {
		var vals [fieldsPerLine]float64
		for i, field := range rec {
			if i == fieldsPerLine-1 {
				field = strings.TrimSpace(field)
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return errors.NewParseError(line, i, "not a number", err)
			}
			vals[i] = v
		}
		ds = append(ds, Sample{X1: vals[0], X2: vals[1], Y: vals[2]})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ds, nil
}

// LoadLabeled reads labeled points from the file at path.
func LoadLabeled(path string) ([]LabeledPoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	points, err := ReadLabeled(f)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return points, nil
}

// ReadLabeled parses lines of the form "x,y,cluster" where cluster is an
// integer. It follows the same line rules as Read.
func ReadLabeled(r io.Reader) ([]LabeledPoint, error) {
	var points []LabeledPoint
	err := readRows(r, func(line int, rec []string) error {
		x, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			return errors.NewParseError(line, 0, "not a number", err)
		}
		y, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return errors.NewParseError(line, 1, "not a number", err)
		}
		cluster, err := strconv.Atoi(strings.TrimSpace(rec[2]))
		if err != nil {
			return errors.NewParseError(line, 2, "not an integer label", err)
		}
		points = append(points, LabeledPoint{Point: Point{X: x, Y: y}, Cluster: cluster})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return points, nil
}

// quoteGuard fails the read at the first double quote. Fields are plain
// comma-separated numbers, so csv quoting is not part of the format.
type quoteGuard struct {
	r    io.Reader
	line int
}

func (g *quoteGuard) Read(p []byte) (int, error) {
	n, err := g.r.Read(p)
	for i, b := range p[:n] {
		switch b {
		case '\n':
			g.line++
		case '"':
			return i, errors.NewParseError(g.line+1, -1, "quoted fields are not supported", nil)
		}
	}
	return n, err
}

// readRows drives the csv reader and enforces the field count. It returns
// ErrEmptyData when no row was seen.
func readRows(r io.Reader, row func(line int, rec []string) error) error {
	reader := csv.NewReader(bufio.NewReader(&quoteGuard{r: r}))
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	rows := 0
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *errors.ParseError
			if errors.As(err, &parseErr) {
				return err
			}
			var csvErr *csv.ParseError
			if errors.As(err, &csvErr) {
				return errors.NewParseError(csvErr.Line, -1, "malformed line", csvErr.Err)
			}
			return errors.Wrap(err, "read samples")
		}

		line, _ := reader.FieldPos(0)
		if len(rec) != fieldsPerLine {
			return errors.NewParseError(line, -1,
				"expected "+strconv.Itoa(fieldsPerLine)+" fields, got "+strconv.Itoa(len(rec)), nil)
		}
		if err := row(line, rec); err != nil {
			return err
		}
		rows++
	}

	if rows == 0 {
		return errors.NewModelError("dataset.Read", "empty data", errors.ErrEmptyData)
	}
	return nil
}

// LabeledPoints views a dataset as KNN points, taking Y as the cluster
// label. Non-integral labels are rejected.
func LabeledPoints(ds Dataset) ([]LabeledPoint, error) {
	points := make([]LabeledPoint, len(ds))
	for i, s := range ds {
		cluster := int(s.Y)
		if float64(cluster) != s.Y {
			return nil, errors.NewValidationError("cluster", "label must be an integer", s.Y)
		}
		points[i] = LabeledPoint{Point: Point{X: s.X1, Y: s.X2}, Cluster: cluster}
	}
	return points, nil
}

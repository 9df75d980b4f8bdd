package payments

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Column names of the transactions file. The amount column is optional.
const (
	colType   = "type"
	colClient = "client"
	colTx     = "tx"
	colAmount = "amount"
)

// RowError reports a malformed row of the transactions file.
// Decoding can continue after a RowError.
type RowError struct {
	Line int    // Line is the 1-based line of the row.
	Tx   uint32 // Tx is the transaction id if it could be read, 0 otherwise.
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// Decoder reads transactions from a CSV stream.
//
// The stream starts with a header row naming the columns type, client, tx and
// optionally amount, in any order. Whitespace around values is ignored and
// rows may omit trailing empty fields:
//
//	type,       client, tx, amount
//	deposit,    1,      1,  1.0
//	dispute,    1,      1
type Decoder struct {
	r       *csv.Reader
	columns map[string]int
	err     error // sticky error, io.EOF once the stream is consumed
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // missing amounts are allowed
	cr.TrimLeadingSpace = true
	return &Decoder{r: cr}
}

// Decode returns the next transaction in the stream.
//
// It returns io.EOF when there are no more rows. A *RowError means the current
// row was malformed and skipped; the next call moves on to the following row.
// Any other error is final.
func (d *Decoder) Decode() (Transaction, error) {
	if d.err != nil {
		return nil, d.err
	}
	if d.columns == nil {
		if err := d.readHeader(); err != nil {
			d.err = err
			return nil, err
		}
	}

	record, err := d.r.Read()
	if err == io.EOF {
		d.err = io.EOF
		return nil, io.EOF
	}
	if err != nil {
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			return nil, &RowError{Line: pe.StartLine, Err: pe.Err}
		}
		d.err = fmt.Errorf("cannot read transactions: %w", err)
		return nil, d.err
	}
	line, _ := d.r.FieldPos(0)
	return d.parseRecord(line, record)
}

// All returns an iterator over the remaining rows of the stream, yielding
// either a transaction or the error Decode returned. Iteration stops at the
// end of the stream or after a final error.
func (d *Decoder) All() iter.Seq2[Transaction, error] {
	return func(yield func(Transaction, error) bool) {
		for {
			tx, err := d.Decode()
			if err == io.EOF {
				return
			}
			if !yield(tx, err) {
				return
			}
			var rowErr *RowError
			if err != nil && !errors.As(err, &rowErr) {
				return
			}
		}
	}
}

func (d *Decoder) readHeader() error {
	header, err := d.r.Read()
	if err == io.EOF {
		return io.EOF // an empty stream holds no transactions
	}
	if err != nil {
		return fmt.Errorf("cannot read header: %w", err)
	}
	d.columns = make(map[string]int, len(header))
	for i, name := range header {
		d.columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range []string{colType, colClient, colTx} {
		if _, ok := d.columns[name]; !ok {
			return fmt.Errorf("invalid header %q: missing column %q", strings.Join(header, ","), name)
		}
	}
	return nil
}

// field returns the trimmed value of column name, "" if absent from the row.
func (d *Decoder) field(record []string, name string) string {
	i, ok := d.columns[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func (d *Decoder) parseRecord(line int, record []string) (Transaction, error) {
	client, err := strconv.ParseUint(d.field(record, colClient), 10, 16)
	if err != nil {
		return nil, &RowError{Line: line, Err: fmt.Errorf("%w: invalid client: %w", ErrMalformedTransaction, err)}
	}
	id, err := strconv.ParseUint(d.field(record, colTx), 10, 32)
	if err != nil {
		return nil, &RowError{Line: line, Err: fmt.Errorf("%w: invalid tx: %w", ErrMalformedTransaction, err)}
	}

	var amount *decimal.Decimal
	if s := d.field(record, colAmount); s != "" {
		a, err := decimal.NewFromString(s)
		if err != nil {
			return nil, &RowError{Line: line, Tx: uint32(id), Err: fmt.Errorf("%w: invalid amount %q: %w", ErrMalformedTransaction, s, err)}
		}
		amount = &a
	}

	tx, err := ParseTransaction(d.field(record, colType), uint16(client), uint32(id), amount)
	if err != nil {
		return nil, &RowError{Line: line, Tx: uint32(id), Err: err}
	}
	return tx, nil
}

// EncodeStatements writes statements as CSV, with a header row.
func EncodeStatements(w io.Writer, statements iter.Seq[Statement]) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"client", "available", "held", "total", "locked"}); err != nil {
		return fmt.Errorf("failed to write statements header: %w", err)
	}
	for s := range statements {
		record := []string{
			strconv.FormatUint(uint64(s.Client), 10),
			s.Available.String(),
			s.Held.String(),
			s.Total.String(),
			strconv.FormatBool(s.Locked),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write statement of client %d: %w", s.Client, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

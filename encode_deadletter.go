package payments

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"
)

// EncodeDeadLetter marshals a single dead letter to JSON and writes it to the
// writer, followed by a newline, in JSONL format.
//
// Opening the file in append mode lets successive runs accumulate dead letters.
func EncodeDeadLetter(w io.Writer, dl DeadLetter) error {
	data, err := json.Marshal(dl)
	if err != nil {
		return fmt.Errorf("failed to marshal dead letter %s: %w", dl.ID, err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write dead letter %s: %w", dl.ID, err)
	}
	return nil
}

// DecodeDeadLetters reads dead letters from a stream of JSONL data, as written
// by EncodeDeadLetter. Empty lines are skipped.
func DecodeDeadLetters(r io.Reader) ([]DeadLetter, error) {
	var letters []DeadLetter
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue
		}

		var temp struct {
			ID          uuid.UUID       `json:"id"`
			Reason      string          `json:"reason"`
			Transaction json.RawMessage `json:"transaction"`
		}
		if err := json.Unmarshal(lineBytes, &temp); err != nil {
			return nil, fmt.Errorf("could not decode dead letter at line %d: %w", line, err)
		}
		tx, err := DecodeTransactionJSON(temp.Transaction)
		if err != nil {
			return nil, fmt.Errorf("invalid transaction in dead letter at line %d: %w", line, err)
		}
		letters = append(letters, DeadLetter{ID: temp.ID, Transaction: tx, Reason: temp.Reason})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}
	return letters, nil
}

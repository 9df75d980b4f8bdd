package renderer

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/etnz/payments"
	md "github.com/nao1215/markdown"
)

// SummaryMarkdown renders a processing report as markdown: the counters, the
// account statements and every transaction that was not applied.
func SummaryMarkdown(r *payments.Report, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Payments Summary")
	doc.PlainText(fmt.Sprintf("%d rows processed: %d applied, %d rejected, %d dead letters, %d malformed.",
		r.Processed, r.Applied, len(r.Rejected), len(r.DeadLetters), len(r.Malformed)))

	doc.H2("Accounts")
	if len(r.Statements) == 0 {
		doc.PlainText("No accounts.")
	} else {
		table := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
				md.AlignLeft,
			},
			Header: []string{"Client", "Available", "Held", "Total", "Locked"},
		}
		for _, s := range r.Statements {
			locked := "no"
			if s.Locked {
				locked = md.Bold("yes")
			}
			table.Rows = append(table.Rows, []string{
				strconv.Itoa(int(s.Client)),
				FormatAmount(s.Available, currency),
				FormatAmount(s.Held, currency),
				FormatAmount(s.Total, currency),
				locked,
			})
		}
		doc.Table(table)
	}

	if len(r.Rejected) > 0 {
		doc.H2("Rejected Transactions")
		table := md.TableSet{
			Header: []string{"Tx", "Client", "Type", "Reason"},
		}
		for _, rej := range r.Rejected {
			tx := rej.Transaction
			table.Rows = append(table.Rows, []string{
				strconv.FormatUint(uint64(tx.TxID()), 10),
				strconv.Itoa(int(tx.ClientID())),
				string(tx.What()),
				rej.Err.Error(),
			})
		}
		doc.Table(table)
	}

	if len(r.DeadLetters) > 0 {
		doc.H2("Dead Letters")
		doc.PlainText("These transactions point to corrupted input or lost messages and need investigation.")
		table := md.TableSet{
			Header: []string{"ID", "Tx", "Client", "Type", "Reason"},
		}
		for _, dl := range r.DeadLetters {
			tx := dl.Transaction
			table.Rows = append(table.Rows, []string{
				dl.ID.String(),
				strconv.FormatUint(uint64(tx.TxID()), 10),
				strconv.Itoa(int(tx.ClientID())),
				string(tx.What()),
				dl.Reason,
			})
		}
		doc.Table(table)
	}

	if len(r.Malformed) > 0 {
		doc.H2("Malformed Rows")
		rows := make([]string, 0, len(r.Malformed))
		for _, e := range r.Malformed {
			rows = append(rows, e.Error())
		}
		doc.OrderedList(rows...)
	}

	return doc.String()
}

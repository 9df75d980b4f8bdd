// Package payments implements a small payments engine that maintains client
// accounts from a stream of transactions.
//
// The supported transactions are:
//   - Deposit and Withdrawal: credit and debit an account.
//   - Dispute: claims that a past deposit was erroneous and holds its amount.
//   - Resolve: closes a dispute and releases the held amount.
//   - Chargeback: reverses a disputed deposit and freezes the account.
//
// An Engine applies transactions one at a time to the accounts of an
// AccountStore, creating accounts the first time a client is seen. Every
// transaction that is not applied yields a *NotAppliedError, telling valid
// rejections (insufficient funds, locked account) from failures that deserve
// attention, which Process collects as dead letters.
//
// Amounts are exact decimals with four digits after the decimal point.
//
// This package serves as the foundational logic for the `payments`
// command-line tool, which reads transactions from CSV and writes account
// statements back as CSV.
package payments

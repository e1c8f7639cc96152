// Package valutatrade implements a single-session currency trading
// simulator: registered users hold a multi-currency portfolio and buy or
// sell currencies against a USD base, priced from a rate table aggregated
// out of independent external providers.
//
// The package is organised around four collaborators:
//
//   - RateTable: a normalized in-memory view over the persisted currency
//     pairs, deriving any cross rate through the USD anchor.
//   - Wallet and Portfolio: per-user balances with a strict non-negativity
//     invariant.
//   - Service: the transaction engine, validating, pricing and committing
//     buys and sells before persisting the whole portfolio document.
//   - Updater: the rate aggregator, merging rates fetched from independent
//     sources with per-pair provenance.
//
// Persistence is a set of small JSON documents under a single data
// directory, rewritten whole and renamed into place atomically.
package valutatrade

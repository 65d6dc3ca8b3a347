// Package fund provides the accounting core of a small investment fund
// whose capital is denominated in Path of Exile 2 currencies. It is
// designed to be local-first and auditable: the whole state of the fund
// lives in a pair of JSON files that can be versioned in a private git
// repository.
//
// The core functionalities include:
//   - Valuation: converting arbitrary game-currency balances to the
//     fund's common unit (divine orbs) via a snapshot rate table, and
//     deriving the net asset value with a haircut on listed inventory.
//   - Unit Ledger: fund-wide total units and per-investor unit balances,
//     the system of record for ownership.
//   - Performance Fees: high-water-mark based fee crystallization,
//     minting fee units to the fund manager.
//   - Pending Requests: deposit and withdrawal requests locked at the
//     unit price of their creation time, settled later in batch.
//   - Persistence: a private snapshot (with plaintext invite codes) and
//     a public dashboard projection safe to distribute to investors.
//
// This package serves as the foundational logic for the `p2f`
// command-line tool; all network fetching and rendering lives in the
// peripheral packages.
package fund

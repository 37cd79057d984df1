// Package cryptotracker provides the state engine of a cryptocurrency market and
// portfolio tracker.
//
// The core functionalities include:
//   - Market Data: Assets as returned by a Gateway, listed or looked up one by one.
//   - Portfolio: Holdings of assets, at most one per asset, kept in insertion order.
//   - Transitions: a pure function from a State and an Action to the next State.
//   - Store: the single owner of the State. It applies actions, launches the
//     Gateway calls some actions require, and feeds their outcome back as new
//     actions.
//   - Valuation: the portfolio value derived from the current State.
//
// Views never hold a mutable State: they read immutable snapshots from the Store
// and send Actions to Store.Dispatch.
package cryptotracker

// Package resolve converts key-based references inside drafts into id-based
// references understood by the target catalog.
//
// Every reference kind (parent category, custom type, supply channel, product
// type, ...) goes through the same state machine, implemented once by
// [Reference.Resolve]:
//
//  1. nil reference: nothing to do
//  2. non-blank id: trusted as-is, no lookup
//  3. blank key: [KindBlankKey] / [KindBlankID] error wrapped with context
//  4. lookup by key: resolved, not found ([KindNotFound]), or transport error
//
// Transport errors returned by a [Lookup] or [Create] are propagated exactly
// as received so callers can tell infrastructure failures apart from data
// problems with errors.Is / errors.As.
//
// Resource-specific resolvers compose these steps into an ordered pipeline of
// [Stage] functions over a draft builder. Stages run strictly in order and the
// first failure short-circuits the rest; independent drafts may be resolved
// concurrently because the only shared state lives behind the lookups.
package resolve

// Package resolver turns an address into the page a tab should show.
//
// Classification comes from the address codec. Home needs no lookup, search
// results run the search engine over the whole cache, archive snapshots look
// up the inner address, and external addresses walk a fixed list of stages
// where the first stage that claims the address wins:
//
//  1. synthetic  - always-available built-in addresses (mail entry points)
//  2. cache      - a record stored under the exact address; expired domains
//     render the error page whatever their template
//  3. pattern    - other archive-host addresses open the archive home,
//     other search-host addresses open the search home
//  4. invalid    - addresses that fail URL validation get the error page
//  5. placeholder - valid but unknown addresses get a generic page
//
// Later stages rely on earlier ones having excluded their cases, so the
// order of the stage table is part of the contract.
//
// The resolver reads the cache on every call. A navigation issued before
// the cache finished hydrating resolves against whatever the cache holds
// at the moment it runs.
package resolver

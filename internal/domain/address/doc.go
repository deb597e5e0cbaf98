// Package address classifies raw address-bar input into typed locations.
//
// Every address the browser sees is turned into a Location of one of four
// kinds:
//
//   - Home: the search engine's front page
//   - SearchResults: https://<search-host>/search?q=<query>
//   - ArchiveSnapshot: https://<archive-host>/web/<YYYYMMDD>/<inner-address>
//   - External: anything else, including input that fails to parse
//
// The codec never rejects input. Deciding whether an External address is
// usable is the resolver's job.
package address

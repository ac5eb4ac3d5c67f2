// Package folio provides the build tooling and client-search runtime of a
// statically generated, bilingual blog and portfolio site. It extracts
// content items, assigns cross-locale identities, builds per-locale search
// indexes, and models the in-browser search modal headlessly.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., yaml/, sqlite/, goquery/).
package folio

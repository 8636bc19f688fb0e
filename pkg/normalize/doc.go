// Package normalize canonicalizes the free-text contact fields of directory
// records: whitespace, case-folded comparison keys, phone digits, e-mail
// addresses, hostnames and slugs. It also enforces the site-wide policy that
// no public field links to the scraped source directory.
//
// Display values keep their case (Space); comparison keys are case-folded
// with full Unicode folding (Key). All tables in this package are read-only.
package normalize

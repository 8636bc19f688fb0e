// Package dedupe decides whether a candidate record duplicates one already
// in the catalog or one accepted earlier in the same run.
package dedupe

import (
	"github.com/lucheestiy/bizcatalog/pkg/catalogs"
	"github.com/lucheestiy/bizcatalog/pkg/normalize"
)

// Reason names the signal that matched a duplicate.
type Reason string

// Reasons in the order they are checked.
const (
	ReasonPhone       Reason = "phone"
	ReasonEmail       Reason = "email"
	ReasonDomain      Reason = "domain"
	ReasonNameAddress Reason = "name_address"
)

// Reasons lists every reason in check order.
var Reasons = []Reason{ReasonPhone, ReasonEmail, ReasonDomain, ReasonNameAddress}

// Keys are the dedupe keys of one record.
type Keys struct {
	Phones      []string
	Emails      []string
	Domains     []string
	NameAddress string
}

// KeysOf extracts the dedupe keys of c. Phones shorter than nine digits,
// shared-platform domains and links to the source directory yield no key; the
// name/address key exists only when both parts are present.
func KeysOf(c *catalogs.Company) Keys {
	var k Keys
	for _, p := range c.Phones {
		if key, ok := normalize.PhoneKey(p); ok {
			k.Phones = append(k.Phones, key)
		}
	}
	for _, e := range c.Emails {
		if key := normalize.Email(e); key != "" {
			k.Emails = append(k.Emails, key)
		}
	}
	for _, w := range c.Websites {
		host := normalize.Domain(w)
		if normalize.IsIgnoredDomain(host) || normalize.IsDisallowedLink(w) {
			continue
		}
		k.Domains = append(k.Domains, host)
	}
	name, address := normalize.Key(c.Name), normalize.Key(c.Address)
	if name != "" && address != "" {
		k.NameAddress = name + "||" + address
	}
	return k
}

type keySet map[string]struct{}

func (s keySet) add(keys ...string) {
	for _, k := range keys {
		s[k] = struct{}{}
	}
}

func (s keySet) has(k string) bool {
	_, ok := s[k]
	return ok
}

// sets holds one key set per reason.
type sets map[Reason]keySet

func newSets() sets {
	s := make(sets, len(Reasons))
	for _, r := range Reasons {
		s[r] = make(keySet)
	}
	return s
}

func (s sets) add(k Keys) {
	s[ReasonPhone].add(k.Phones...)
	s[ReasonEmail].add(k.Emails...)
	s[ReasonDomain].add(k.Domains...)
	if k.NameAddress != "" {
		s[ReasonNameAddress].add(k.NameAddress)
	}
}

// Index holds the dedupe keys of the existing catalog and of the records
// accepted so far in this run. It is not safe for concurrent use.
type Index struct {
	existing sets
	accepted sets
}

// NewIndex seeds an Index with the keys of the existing catalog records.
func NewIndex(existing []*catalogs.Company) *Index {
	idx := &Index{existing: newSets(), accepted: newSets()}
	for _, c := range existing {
		idx.existing.add(KeysOf(c))
	}
	return idx
}

func (idx *Index) seen(r Reason, keys ...string) bool {
	for _, k := range keys {
		if idx.existing[r].has(k) || idx.accepted[r].has(k) {
			return true
		}
	}
	return false
}

// Check returns the first reason c duplicates a known record, checking phones,
// emails, domains and then the name/address pair.
func (idx *Index) Check(c *catalogs.Company) (Reason, bool) {
	k := KeysOf(c)
	switch {
	case idx.seen(ReasonPhone, k.Phones...):
		return ReasonPhone, true
	case idx.seen(ReasonEmail, k.Emails...):
		return ReasonEmail, true
	case idx.seen(ReasonDomain, k.Domains...):
		return ReasonDomain, true
	case k.NameAddress != "" && idx.seen(ReasonNameAddress, k.NameAddress):
		return ReasonNameAddress, true
	}
	return "", false
}

// Add records the keys of an accepted record.
func (idx *Index) Add(c *catalogs.Company) {
	idx.accepted.add(KeysOf(c))
}

// Admit accepts c when it is not a duplicate, adding its keys, and otherwise
// returns the matching reason.
func (idx *Index) Admit(c *catalogs.Company) (Reason, bool) {
	if reason, dup := idx.Check(c); dup {
		return reason, false
	}
	idx.Add(c)
	return "", true
}

// Size reports how many distinct keys of each kind are known.
func (idx *Index) Size() map[Reason]int {
	out := make(map[Reason]int, len(Reasons))
	for _, r := range Reasons {
		n := len(idx.existing[r])
		for k := range idx.accepted[r] {
			if !idx.existing[r].has(k) {
				n++
			}
		}
		out[r] = n
	}
	return out
}

package catalogs

import (
	"bytes"
	"encoding/json"
	"reflect"
	"sort"
	"strconv"
)

// CategoryRef identifies a top-level category of the catalog taxonomy.
type CategoryRef struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// RubricRef identifies a rubric and the category that owns it.
type RubricRef struct {
	Slug         string `json:"slug"`
	Name         string `json:"name"`
	URL          string `json:"url"`
	CategorySlug string `json:"category_slug"`
	CategoryName string `json:"category_name"`
}

// PhoneExt is a phone number with free-form labels such as "fax".
type PhoneExt struct {
	Number string   `json:"number"`
	Labels []string `json:"labels"`
}

// WorkHours holds the opening hours shown on a company card.
type WorkHours struct {
	WorkTime  string `json:"work_time,omitempty"`
	BreakTime string `json:"break_time,omitempty"`
	Status    string `json:"status,omitempty"`
}

// Extra holds auxiliary geo fields.
type Extra struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

// Company is one line of the catalog.
type Company struct {
	Source        string        `json:"source"`
	SourceID      string        `json:"source_id"`
	SourceURL     string        `json:"source_url"`
	Name          string        `json:"name"`
	UNP           string        `json:"unp"`
	Country       string        `json:"country"`
	Region        string        `json:"region"`
	City          string        `json:"city"`
	Address       string        `json:"address"`
	Phones        []string      `json:"phones"`
	PhonesExt     []PhoneExt    `json:"phones_ext"`
	Emails        []string      `json:"emails"`
	Websites      []string      `json:"websites"`
	Description   string        `json:"description"`
	About         string        `json:"about"`
	ContactPerson string        `json:"contact_person"`
	LogoURL       string        `json:"logo_url"`
	WorkHours     WorkHours     `json:"work_hours"`
	Categories    []CategoryRef `json:"categories"`
	Rubrics       []RubricRef   `json:"rubrics"`
	Extra         Extra         `json:"extra"`

	// Unknown keeps fields this package does not model so that records
	// written by other tools survive a load/write round trip.
	Unknown map[string]json.RawMessage `json:"-"`

	// verbatim holds the original bytes of known fields whose value did not
	// fit the model (wrong type, extra nested keys). They are written back
	// unchanged in place of the modeled value.
	verbatim map[string]json.RawMessage
	// line is the 1-based line the record was read from, 0 when built in memory.
	line int
}

type field struct {
	name string
	ptr  any
}

// fields lists the modeled fields in output order.
func (c *Company) fields() []field {
	return []field{
		{"source", &c.Source},
		{"source_id", &c.SourceID},
		{"source_url", &c.SourceURL},
		{"name", &c.Name},
		{"unp", &c.UNP},
		{"country", &c.Country},
		{"region", &c.Region},
		{"city", &c.City},
		{"address", &c.Address},
		{"phones", &c.Phones},
		{"phones_ext", &c.PhonesExt},
		{"emails", &c.Emails},
		{"websites", &c.Websites},
		{"description", &c.Description},
		{"about", &c.About},
		{"contact_person", &c.ContactPerson},
		{"logo_url", &c.LogoURL},
		{"work_hours", &c.WorkHours},
		{"categories", &c.Categories},
		{"rubrics", &c.Rubrics},
		{"extra", &c.Extra},
	}
}

// Line returns the 1-based line the record was read from, or 0 for
// records that were not loaded from a file.
func (c *Company) Line() int {
	return c.line
}

// UnmarshalJSON decodes a catalog line. Any JSON object is accepted: a known
// field holding a value of another shape is decoded as far as it goes and
// its original bytes are kept for writing, unmodeled fields go to Unknown.
func (c *Company) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if fields == nil {
		return nil
	}

	var v Company
	targets := make(map[string]any, len(knownFields))
	for _, f := range v.fields() {
		targets[f.name] = f.ptr
	}
	for k, raw := range fields {
		ptr, ok := targets[k]
		if !ok {
			if v.Unknown == nil {
				v.Unknown = make(map[string]json.RawMessage)
			}
			v.Unknown[k] = raw
			continue
		}
		if !decodeField(raw, ptr) {
			if v.verbatim == nil {
				v.verbatim = make(map[string]json.RawMessage)
			}
			v.verbatim[k] = raw
		}
	}
	*c = v
	return nil
}

// MarshalJSON encodes the record with absent lists written as [] and any
// unknown fields appended in key order.
func (c Company) MarshalJSON() ([]byte, error) {
	v := c
	v.fillDefaults()

	out := []byte{'{'}
	for i, f := range v.fields() {
		val, ok := c.verbatim[f.name]
		if !ok {
			var err error
			if val, err = marshalNoEscape(f.ptr); err != nil {
				return nil, err
			}
		}
		if i > 0 {
			out = append(out, ',')
		}
		out = appendMember(out, f.name, val)
	}

	keys := make([]string, 0, len(c.Unknown))
	for k := range c.Unknown {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out = append(out, ',')
		out = appendMember(out, k, c.Unknown[k])
	}
	return append(out, '}'), nil
}

// remodel drops the kept original bytes of the named fields so their
// modeled values are written instead.
func (c *Company) remodel(names ...string) {
	for _, name := range names {
		delete(c.verbatim, name)
	}
}

func (c *Company) fillDefaults() {
	if c.Phones == nil {
		c.Phones = []string{}
	}
	if c.PhonesExt == nil {
		c.PhonesExt = []PhoneExt{}
	}
	for i := range c.PhonesExt {
		if c.PhonesExt[i].Labels == nil {
			c.PhonesExt[i].Labels = []string{}
		}
	}
	if c.Emails == nil {
		c.Emails = []string{}
	}
	if c.Websites == nil {
		c.Websites = []string{}
	}
	if c.Categories == nil {
		c.Categories = []CategoryRef{}
	}
	if c.Rubrics == nil {
		c.Rubrics = []RubricRef{}
	}
}

var knownFields = func() map[string]struct{} {
	known := make(map[string]struct{})
	for _, f := range new(Company).fields() {
		known[f.name] = struct{}{}
	}
	return known
}()

// decodeField decodes raw into ptr and reports whether the modeled value
// still carries everything raw held.
func decodeField(raw json.RawMessage, ptr any) bool {
	if err := json.Unmarshal(raw, ptr); err != nil {
		coerce(raw, ptr)
		return false
	}
	switch ptr.(type) {
	case *string, *[]string:
		return true
	}

	var want, got any
	if err := json.Unmarshal(raw, &want); err != nil {
		return false
	}
	enc, err := json.Marshal(ptr)
	if err != nil {
		return false
	}
	if err := json.Unmarshal(enc, &got); err != nil {
		return false
	}
	return covers(want, got)
}

// coerce fills text fields from scalar values of another JSON type, so a
// numeric unp still reads as "190000000".
func coerce(raw json.RawMessage, ptr any) {
	switch p := ptr.(type) {
	case *string:
		*p = scalarText(raw)
	case *[]string:
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			*p = nil
			if s := scalarText(raw); s != "" {
				*p = []string{s}
			}
			return
		}
		out := make([]string, 0, len(items))
		for _, item := range items {
			if s := scalarText(item); s != "" {
				out = append(out, s)
			}
		}
		*p = out
	}
}

func scalarText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return strconv.FormatBool(b)
	}
	return ""
}

// covers reports whether got holds every value of want. Nulls and keys
// absent from want are defaults and need not match.
func covers(want, got any) bool {
	switch w := want.(type) {
	case nil:
		return true
	case map[string]any:
		g, ok := got.(map[string]any)
		if !ok {
			return false
		}
		for k, wv := range w {
			gv, ok := g[k]
			if !ok {
				if wv != nil {
					return false
				}
				continue
			}
			if !covers(wv, gv) {
				return false
			}
		}
		return true
	case []any:
		g, ok := got.([]any)
		if !ok || len(g) != len(w) {
			return false
		}
		for i := range w {
			if !covers(w[i], g[i]) {
				return false
			}
		}
		return true
	default:
		return reflect.DeepEqual(want, got)
	}
}

func appendMember(out []byte, name string, val []byte) []byte {
	key, _ := marshalNoEscape(name)
	out = append(out, key...)
	out = append(out, ':')
	return append(out, val...)
}

func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

package dedupe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucheestiy/bizcatalog/pkg/catalogs"
)

func TestKeysOf(t *testing.T) {
	c := &catalogs.Company{
		Name:     " ООО  Альфа ",
		Address:  "г. Минск, ул. Ленина 1",
		Phones:   []string{"+375 (29) 111-22-33", "12-34"},
		Emails:   []string{" Info@Alfa.BY ", ""},
		Websites: []string{"https://www.alfa.by", "vk.com/alfa", "https://m.shop.alfa.by", "belarusinfo.by/company/1"},
	}
	k := KeysOf(c)
	assert.Equal(t, []string{"375291112233"}, k.Phones)
	assert.Equal(t, []string{"info@alfa.by"}, k.Emails)
	assert.Equal(t, []string{"alfa.by", "shop.alfa.by"}, k.Domains)
	assert.Equal(t, "ооо альфа||г. минск, ул. ленина 1", k.NameAddress)

	assert.Empty(t, KeysOf(&catalogs.Company{Name: "Без адреса"}).NameAddress)
}

func TestCheckOrder(t *testing.T) {
	existing := []*catalogs.Company{{
		Name:     "Альфа",
		Address:  "Минск",
		Phones:   []string{"+375291112233"},
		Emails:   []string{"info@alfa.by"},
		Websites: []string{"alfa.by"},
	}}
	idx := NewIndex(existing)

	tests := []struct {
		name      string
		candidate *catalogs.Company
		want      Reason
		dup       bool
	}{
		{"phone wins over everything", &catalogs.Company{Name: "Альфа", Address: "Минск", Phones: []string{"8 029 111 22 33", "375291112233"}, Emails: []string{"info@alfa.by"}}, ReasonPhone, true},
		{"email", &catalogs.Company{Emails: []string{"INFO@alfa.by"}, Websites: []string{"alfa.by"}}, ReasonEmail, true},
		{"domain through mobile host", &catalogs.Company{Websites: []string{"https://m.alfa.by/contacts"}}, ReasonDomain, true},
		{"name and address", &catalogs.Company{Name: "АЛЬФА", Address: " минск "}, ReasonNameAddress, true},
		{"name only is not enough", &catalogs.Company{Name: "Альфа"}, "", false},
		{"short phone ignored", &catalogs.Company{Phones: []string{"1112233"}}, "", false},
		{"ignored domain", &catalogs.Company{Websites: []string{"vk.com/alfa"}}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reason, dup := idx.Check(tt.candidate)
			assert.Equal(t, tt.dup, dup)
			assert.Equal(t, tt.want, reason)
		})
	}
}

func TestAdmitTracksAcceptedRecords(t *testing.T) {
	idx := NewIndex(nil)

	first := &catalogs.Company{Name: "Бета", Phones: []string{"+375 17 222-33-44"}}
	second := &catalogs.Company{Name: "Бета 2", Phones: []string{"375172223344"}}
	third := &catalogs.Company{Name: "Гамма", Address: "Гродно"}
	fourth := &catalogs.Company{Name: "гамма", Address: "ГРОДНО"}

	_, ok := idx.Admit(first)
	require.True(t, ok)

	reason, ok := idx.Admit(second)
	assert.False(t, ok)
	assert.Equal(t, ReasonPhone, reason)

	_, ok = idx.Admit(third)
	require.True(t, ok)
	reason, ok = idx.Admit(fourth)
	assert.False(t, ok)
	assert.Equal(t, ReasonNameAddress, reason)

	assert.Equal(t, map[Reason]int{ReasonPhone: 1, ReasonEmail: 0, ReasonDomain: 0, ReasonNameAddress: 1}, idx.Size())
}

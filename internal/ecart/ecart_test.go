package ecart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestClasserValeurAbsente(t *testing.T) {
	r := Classer(dec("450000"), nil, PolitiqueCaisse)
	assert.Equal(t, NiveauNone, r.Niveau)
	assert.True(t, r.Montant.IsZero())
}

func TestClasserZeroToujoursOK(t *testing.T) {
	// Zero variance is ok under both policies, for any theoretical value.
	for _, th := range []string{"0", "123456.75", "450000", "-5"} {
		r := Classer(dec(th), ptr(th), PolitiqueCiterne)
		assert.Equal(t, NiveauOK, r.Niveau, "citerne, theorique=%s", th)
		r = Classer(dec(th), ptr(th), PolitiqueCaisse)
		assert.Equal(t, NiveauOK, r.Niveau, "caisse, theorique=%s", th)
	}
}

func TestClasserCiterne(t *testing.T) {
	cases := []struct {
		theorique, reel string
		niveau          Niveau
	}{
		{"123789.50", "123789.50", NiveauOK},
		{"123789.50", "123789.55", NiveauOK},       // |e| = 0.05 < 0.1
		{"123789.50", "123789.90", NiveauWarning},  // |e| = 0.40
		{"123789.50", "123788.60", NiveauWarning},  // |e| = 0.90, shortage
		{"123789.50", "123791.00", NiveauCritical}, // |e| = 1.50
		{"123789.50", "123788.50", NiveauCritical}, // |e| = 1.00 exactly
	}
	for _, c := range cases {
		r := Classer(dec(c.theorique), ptr(c.reel), PolitiqueCiterne)
		assert.Equal(t, c.niveau, r.Niveau, "reel=%s", c.reel)
	}
}

func TestClasserCaisse(t *testing.T) {
	cases := []struct {
		theorique, reel, montant string
		niveau                   Niveau
	}{
		{"450000", "450000", "0", NiveauOK},
		{"450000", "449500", "-500", NiveauWarning},
		{"450000", "450500", "500", NiveauWarning},
		{"450000", "445000", "-5000", NiveauCritical},
		{"450000", "451000", "1000", NiveauCritical}, // exactly at threshold
		{"450000", "449999", "-1", NiveauWarning},    // any non-zero écart is at least warning
	}
	for _, c := range cases {
		r := Classer(dec(c.theorique), ptr(c.reel), PolitiqueCaisse)
		assert.Equal(t, c.niveau, r.Niveau, "reel=%s", c.reel)
		assert.Equal(t, c.montant, r.Montant.String())
	}
}

func TestClasserSymetrie(t *testing.T) {
	// Overage and shortage of the same magnitude get the same tier; only the
	// sign of Montant differs.
	over := Classer(dec("450000"), ptr("450700"), PolitiqueCaisse)
	short := Classer(dec("450000"), ptr("449300"), PolitiqueCaisse)
	assert.Equal(t, over.Niveau, short.Niveau)
	assert.Equal(t, over.Montant.Neg().String(), short.Montant.String())
}

func TestNiveauMonotone(t *testing.T) {
	// Increasing |écart| must never decrease severity.
	prev := 0
	for _, reel := range []string{"1000", "1000.05", "1000.5", "1001", "1050"} {
		r := Classer(dec("1000"), ptr(reel), PolitiqueCiterne)
		sev := r.Niveau.Severite()
		assert.GreaterOrEqual(t, sev, prev, "reel=%s", reel)
		prev = sev
	}
}

func TestNoteRequise(t *testing.T) {
	assert.False(t, NoteRequise(NiveauOK))
	assert.False(t, NoteRequise(NiveauNone))
	assert.True(t, NoteRequise(NiveauWarning))
	assert.True(t, NoteRequise(NiveauCritical))
}

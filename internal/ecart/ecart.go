// Package ecart classifies the discrepancy between a theoretical value and a
// measured one (cash counted at shift close, meter index read on a pump).
// The classification is purely advisory: callers decide whether a tier blocks
// anything. All arithmetic uses shopspring/decimal — never float64.
package ecart

import "github.com/shopspring/decimal"

// Niveau: "none" | "ok" | "warning" | "critical"
type Niveau string

const (
	// NiveauNone means no judgment is possible (value not yet entered).
	NiveauNone     Niveau = "none"
	NiveauOK       Niveau = "ok"
	NiveauWarning  Niveau = "warning"
	NiveauCritical Niveau = "critical"
)

// Severite orders tiers for monotonicity checks: none < ok < warning < critical.
func (n Niveau) Severite() int {
	switch n {
	case NiveauOK:
		return 1
	case NiveauWarning:
		return 2
	case NiveauCritical:
		return 3
	default:
		return 0
	}
}

// Politique holds the absolute thresholds of one domain.
// An écart e is "ok" when e == 0 or |e| < SeuilOK, "warning" when
// |e| < SeuilCritique, "critical" otherwise. Sign never changes the tier —
// an overage and a shortage of the same magnitude classify identically.
type Politique struct {
	SeuilOK       decimal.Decimal
	SeuilCritique decimal.Decimal
}

var (
	// PolitiqueCiterne: meter indexes in litres. |e| < 0.1 ok, < 1 warning, >= 1 critical.
	PolitiqueCiterne = Politique{
		SeuilOK:       decimal.New(1, -1), // 0.1
		SeuilCritique: decimal.NewFromInt(1),
	}
	// PolitiqueCaisse: amounts in FCFA (no subunits). Only an exact count is ok;
	// |e| < 1000 warning, >= 1000 critical.
	PolitiqueCaisse = Politique{
		SeuilOK:       decimal.Zero,
		SeuilCritique: decimal.NewFromInt(1000),
	}
)

// Resultat is recomputed on demand, never persisted as an entity of its own.
type Resultat struct {
	Montant decimal.Decimal `json:"montant"`
	Niveau  Niveau          `json:"niveau"`
}

// Classer computes reel - theorique and assigns a tier under p.
// A nil reel means the operator has not entered the value yet: the result is
// NiveauNone with a zero montant rather than an error.
func Classer(theorique decimal.Decimal, reel *decimal.Decimal, p Politique) Resultat {
	if reel == nil {
		return Resultat{Montant: decimal.Zero, Niveau: NiveauNone}
	}

	montant := reel.Sub(theorique)
	abs := montant.Abs()

	var niveau Niveau
	switch {
	case abs.IsZero() || abs.LessThan(p.SeuilOK):
		niveau = NiveauOK
	case abs.LessThan(p.SeuilCritique):
		niveau = NiveauWarning
	default:
		niveau = NiveauCritical
	}
	return Resultat{Montant: montant, Niveau: niveau}
}

// NoteRequise reports whether the tier should prompt the operator for an
// explanatory note. Advisory only — submission is never blocked on it.
func NoteRequise(n Niveau) bool {
	return n != NiveauOK && n != NiveauNone
}

package penalty

import (
	"math"
	"strings"

	"github.com/linesmerrill/avenue-police-api/models"
)

// Discount is a multiplicative reduction of fine and sentence.
type Discount struct {
	Name   string
	Factor float64
}

// Discount names
const (
	AttorneyDiscount    = "attorney"
	CooperationDiscount = "cooperation"
)

// discounts are applied in this order. Both scale the running value so they
// compound (0.70 * 0.80) rather than add up.
var discounts = []Discount{
	{Name: AttorneyDiscount, Factor: 0.70},
	{Name: CooperationDiscount, Factor: 0.80},
}

// Discounts returns the discounts in the order they are applied.
func Discounts() []Discount {
	out := make([]Discount, len(discounts))
	copy(out, discounts)
	return out
}

// ComputeTotals sums the selected violations and applies the discounts the
// flags make eligible. Bail is never discounted and only positive bails count.
func ComputeTotals(selection *Selection, attorneyPresent bool, attorneyName, attorneyID string, cooperation bool) (models.Totals, models.Reductions) {
	var t models.Totals
	for _, v := range selection.Items() {
		t.FineBase += v.Fine
		t.SentenceBase += v.Penalty
		if v.Bail > 0 {
			t.BailTotal += v.Bail
		}
	}

	r := models.Reductions{
		AttorneyApplied: attorneyPresent &&
			strings.TrimSpace(attorneyName) != "" &&
			strings.TrimSpace(attorneyID) != "",
		CooperationApplied: cooperation,
	}
	applied := map[string]bool{
		AttorneyDiscount:    r.AttorneyApplied,
		CooperationDiscount: r.CooperationApplied,
	}

	fine := float64(t.FineBase)
	sentence := float64(t.SentenceBase)
	for _, d := range discounts {
		if !applied[d.Name] {
			continue
		}
		fine *= d.Factor
		sentence *= d.Factor
	}
	t.FineFinal = roundHalfUp(fine)
	t.SentenceFinal = roundHalfUp(sentence)

	return t, r
}

func roundHalfUp(x float64) int64 {
	return int64(math.Floor(x + 0.5))
}

package report

import "github.com/sells-group/sourcing-cli/internal/model"

// Segment is one bar of the stacked should-cost chart.
type Segment struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
	Label string  `json:"label"`
}

// Chart is a presentation-neutral description of the stacked bar comparing
// the should-cost model with the supplier's offer.
type Chart struct {
	Title     string    `json:"title"`
	YAxis     string    `json:"y_axis"`
	Segments  []Segment `json:"segments"`
	OfferLine float64   `json:"offer_line"`
}

// ShouldCostChart builds the chart for a verdict. The bubble segment is
// omitted when the offer is at or below fair price.
func ShouldCostChart(in model.NegotiationInput, v model.Verdict) Chart {
	d := v.Decomposition
	c := Chart{
		Title:     "Should-Cost Model",
		YAxis:     "Unit price ($/kg)",
		OfferLine: in.OfferPrice,
		Segments: []Segment{
			{Name: "Market Base", Value: d.Base, Color: "#adb5bd", Label: Money(d.Base)},
			{Name: "Allowed Premium", Value: d.Premium, Color: "#28a745", Label: "+" + Money(d.Premium)},
		},
	}
	if d.Bubble > 0 {
		c.Segments = append(c.Segments, Segment{
			Name: "Negotiation Target", Value: d.Bubble, Color: "#dc3545", Label: "GAP: " + Money(d.Bubble),
		})
	}
	return c
}

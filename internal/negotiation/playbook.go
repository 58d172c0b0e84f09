package negotiation

import "github.com/sells-group/sourcing-cli/internal/model"

// play is the fixed guidance attached to a negotiation case.
type play struct {
	title     string
	narrative string
	timing    string
	leverage  string
	advantage model.Advantage
	strategy  string
	// target returns the target price and the range it is drawn from.
	target func(f Facts) (price, low, high float64)
}

func atOffer(f Facts) (float64, float64, float64) {
	return f.Input.OfferPrice, f.Input.OfferPrice, f.Input.OfferPrice
}

func atFair(f Facts) (float64, float64, float64) {
	return f.FairPrice, f.FairPrice, f.FairPrice
}

func atMarket(f Facts) (float64, float64, float64) {
	return f.Input.MarketAvgPrice, f.Input.MarketAvgPrice, f.Input.MarketAvgPrice
}

var playbook = map[model.NegotiationCase]play{
	model.CaseSupplyShortage: {
		title:     "Secure Volume",
		narrative: "Securing volume matters more than price right now. If you do not buy now you may not be able to buy later.",
		timing:    "Buy now",
		leverage:  "Supplier 80 : Buyer 20",
		advantage: model.AdvantageSupplier,
		strategy:  "Accept the offer and negotiate volume, allocation and delivery dates instead of price.",
		target:    atOffer,
	},
	model.CaseLogisticsRisk: {
		title:     "Conditional Negotiation",
		narrative: "There is some bubble in the price, but delivery risk is larger. Concede a little on unit price in exchange for guaranteed shipment.",
		timing:    "Buy now with a shipping guarantee",
		leverage:  "Supplier 60 : Buyer 40",
		advantage: model.AdvantageNeutral,
		strategy:  "Trade a small price concession for priority shipping and late-delivery penalty clauses.",
		target: func(f Facts) (float64, float64, float64) {
			return f.FairPrice * LogisticsConcessionHigh, f.FairPrice * LogisticsConcessionLow, f.FairPrice * LogisticsConcessionHigh
		},
	},
	model.CaseGreed: {
		title:     "Strong Push",
		narrative: "The increase has no justification. Both the market trend and the outlook are on your side.",
		timing:    "Negotiate before committing",
		leverage:  "Buyer 80 : Supplier 20",
		advantage: model.AdvantageBuyer,
		strategy:  "Present the market average and demand the premium be removed entirely.",
		target:    atMarket,
	},
	model.CaseGoldenTime: {
		title:     "Golden Time",
		narrative: "The current price is likely the bottom. Switch to a long-term contract.",
		timing:    "Lock in now",
		leverage:  "Buyer 60 : Supplier 40",
		advantage: model.AdvantageNeutral,
		strategy:  "Accept the current price and lock it in with a long-term contract before the forecast rise.",
		target:    atOffer,
	},
	model.CaseBearMarket: {
		title:     "Wait and See",
		narrative: "This is a falling knife. Unless the volume is urgent, postpone the purchase.",
		timing:    "Defer purchase",
		leverage:  "Buyer 70 : Supplier 30",
		advantage: model.AdvantageBuyer,
		strategy:  "Buy only urgent volume and bid well under the market to invite clearance pricing.",
		target: func(f Facts) (float64, float64, float64) {
			m := f.Input.MarketAvgPrice
			return m * BearDiscountLow, m * BearDiscountLow, m * BearDiscountHigh
		},
	},
	model.CaseGeneral: {
		title:     "Negotiate",
		narrative: "A normal amount of back and forth is needed.",
		timing:    "Standard purchasing cycle",
		leverage:  "Balanced 50 : 50",
		advantage: model.AdvantageNeutral,
		strategy:  "Anchor the discussion on the computed fair price.",
		target:    atFair,
	},
}

package supplier

import (
	"strings"
	"text/template"

	"go.uber.org/zap"

	"github.com/sells-group/sourcing-cli/internal/model"
)

const greeting = `{{if .SupplierName}}Dear {{.SupplierName}} team,{{else}}Dear Sir or Madam,{{end}}

`

// Letters are keyed by the tier they serve. Grades without their own letter
// receive the generic request for quotation.
var letters = map[string]string{
	"strategic": greeting + `Trade data shows that you have been steadily expanding your export volumes and have built successful partnerships with global leaders.

These capabilities match our requirements for '{{.TargetSpec}}' exactly. We also value the stability of your supply chain, and we would like to propose a long-term key account partnership that goes beyond one-off transactions, aimed at growing together in the Korean market.

Would you be available for a meeting to discuss an MOU or an annual contract?`,

	"conditional": greeting + `We were impressed by the quality of your products and your growth. We are positively reviewing the purchase of '{{.TargetSpec}}'.

However, we noticed that your volumes tend to concentrate in certain periods. Since stable delivery is our top priority, we would like to ask whether a priority shipping clause can be included in the contract.
If so, please send us a detailed quotation.`,

	"quarantine": greeting + `We are well aware of your reputation in the US and European markets. Although you have not yet exported to Korea, we believe the quality of your products will be well received.

Before the main contract, we would like to request a sample test and a review of the related documents to confirm compliance with Korean quarantine standards.`,

	"generic": greeting + `We are currently looking for a supplier of '{{.TargetSpec}}'.
Please send us your product specifications and an FOB quotation, and we will review them.`,
}

var letterTemplates = func() map[string]*template.Template {
	out := make(map[string]*template.Template, len(letters))
	for name, body := range letters {
		out[name] = template.Must(template.New(name).Parse(body))
	}
	return out
}()

func letterFor(g model.Grade) string {
	switch g {
	case model.GradeS:
		return "strategic"
	case model.GradeAMinus:
		return "conditional"
	case model.GradeBPlus:
		return "quarantine"
	default:
		return "generic"
	}
}

// DraftEmail renders the opening email for a supplier of grade g.
func DraftEmail(g model.Grade, in model.SupplierInput) string {
	data := struct {
		SupplierName string
		TargetSpec   string
	}{
		SupplierName: strings.TrimSpace(in.SupplierName),
		TargetSpec:   strings.TrimSpace(in.TargetSpec),
	}

	name := letterFor(g)
	var b strings.Builder
	if err := letterTemplates[name].Execute(&b, data); err != nil {
		zap.L().Error("supplier: render email", zap.String("letter", name), zap.Error(err))
		return ""
	}
	return b.String()
}

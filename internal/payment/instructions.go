package payment

import (
	"sort"
	"strings"
)

const (
	MethodCashOnDelivery = "cash_on_delivery"
	MethodCard           = "card"
	MethodBankTransfer   = "bank_transfer"
	MethodMobileMoney    = "mobile_money"
)

// Method is a payment option offered at checkout. Funds are never captured
// by the client; the backend settles the order.
type Method struct {
	ID    string
	Label string
}

var methods = map[string]Method{
	MethodCashOnDelivery: {ID: MethodCashOnDelivery, Label: "Cash on delivery"},
	MethodCard:           {ID: MethodCard, Label: "Card"},
	MethodBankTransfer:   {ID: MethodBankTransfer, Label: "Bank transfer"},
	MethodMobileMoney:    {ID: MethodMobileMoney, Label: "Mobile money"},
}

var InstructionMap = map[string][]string{
	MethodCashOnDelivery: {
		"Your order will be delivered to the address provided",
		"Have {{amount}} ready in cash when the courier arrives",
		"Pay the courier directly and keep the receipt",
	},
	MethodCard: {
		"You will be asked for your card details after the order is placed",
		"The card is charged {{amount}} once the order is confirmed",
	},
	MethodBankTransfer: {
		"Transfer {{amount}} to the account shown on the order confirmation",
		"Use order {{order_id}} as the transfer reference",
		"The order ships once the transfer is received",
	},
	MethodMobileMoney: {
		"Approve the {{amount}} payment prompt sent to {{phone}}",
		"Use order {{order_id}} as the reference if asked",
	},
}

// Lookup returns the method for id.
func Lookup(id string) (Method, bool) {
	m, ok := methods[id]
	return m, ok
}

// Methods lists every payment option ordered by id.
func Methods() []Method {
	out := make([]Method, 0, len(methods))
	for _, m := range methods {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func GetInstructions(method string) []string {
	if steps, ok := InstructionMap[method]; ok {
		return steps
	}

	return []string{
		"Follow the payment instructions on the order confirmation",
	}
}

type InstructionVars map[string]string

func InjectVariables(
	steps []string,
	vars InstructionVars,
) []string {
	result := make([]string, 0, len(steps))

	for _, step := range steps {
		updated := step
		for key, value := range vars {
			updated = strings.ReplaceAll(
				updated,
				"{{"+key+"}}",
				value,
			)
		}
		result = append(result, updated)
	}

	return result
}

package form

// MobileOperator is a mobile network operator selectable on the top-up form.
type MobileOperator struct {
	ID     string
	Name   string
	Prefix string // first two digits of the subscriber number
}

// MobileOperators lists the supported operators in display order.
var MobileOperators = []MobileOperator{
	{ID: "azercell", Name: "Azercell", Prefix: "50"},
	{ID: "bakcell", Name: "Bakcell", Prefix: "55"},
	{ID: "nar", Name: "Nar", Prefix: "70"},
}

// GasServices lists the supported gas bill providers.
var GasServices = []string{"azergas", "socar", "azgas"}

// Suggested quick amounts shown next to the amount inputs.
var (
	QuickAmountsPayment = []int{5, 10, 20, 50, 100}
	QuickAmountsMobile  = []int{5, 10, 15, 20, 30, 50}
	QuickAmountsGas     = []int{20, 50, 100, 150, 200}
)

// DetectOperator resolves an operator from the first two digits of a phone
// number in any formatting state. Returns false until two digits are typed
// or when the prefix matches no operator.
func DetectOperator(phone string) (MobileOperator, bool) {
	cleaned := digits(phone)
	if len(cleaned) < 2 {
		return MobileOperator{}, false
	}
	prefix := cleaned[:2]
	for _, op := range MobileOperators {
		if op.Prefix == prefix {
			return op, true
		}
	}
	return MobileOperator{}, false
}

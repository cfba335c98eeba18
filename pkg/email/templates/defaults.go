package templates

const (
	DefaultFirstName  = "there"
	DefaultTierName   = "Starter"
	DefaultChargeDate = "your next billing date"
)

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

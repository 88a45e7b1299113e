package enums

// CartAddOutcome distinguishes a newly appended cart line from a merged one.
type CartAddOutcome string

const (
	CartAddOutcomeAdded   CartAddOutcome = "added"
	CartAddOutcomeUpdated CartAddOutcome = "updated"
)

// String implements fmt.Stringer.
func (o CartAddOutcome) String() string {
	return string(o)
}

package extract

// Aggregate accumulates ingredient quantities across a whole plan, keyed by
// normalized name and then by canonical unit. "rice"/"g" and "rice"/"" are
// separate buckets. Quantities are only ever added, never overwritten.
type Aggregate map[string]map[string]float64

// NewAggregate returns an empty aggregate. Callers own the lifetime: one
// aggregate per plan, never reused across plans.
func NewAggregate() Aggregate {
	return make(Aggregate)
}

// Add folds an entry into the aggregate, creating the nested keys on demand.
func (a Aggregate) Add(name, unit string, quantity float64) {
	units, ok := a[name]
	if !ok {
		units = make(map[string]float64)
		a[name] = units
	}
	units[unit] += quantity
}

// Names returns the distinct ingredient names in the aggregate.
func (a Aggregate) Names() []string {
	names := make([]string, 0, len(a))
	for name := range a {
		names = append(names, name)
	}
	return names
}

package feature

import (
	"fmt"
	"strconv"
)

/*
Feature represents a property that can be observed on a row: one of its
columns, identified by its name and zero-based index.
*/
type Feature interface {
	Name() string
	Index() int
	Valid(string) (bool, error)
}

/*
DiscreteFeature represents a categorical property that can be observed on a
row. If its set of available values is empty any value is accepted.
*/
type DiscreteFeature struct {
	name            string
	index           int
	availableValues []string
}

// LabelName is the name given to the decision column of rows read without metadata.
const LabelName = "decision"

/*
NewDiscreteFeature takes a name string, a column index and a slice of
available value strings and returns a discrete feature with them.
*/
func NewDiscreteFeature(name string, index int, availableValues []string) *DiscreteFeature {
	return &DiscreteFeature{name, index, availableValues}
}

/*
Columns takes the number of columns of a dataset and returns a feature for
each of them. Attributes are named after their index and the last column,
the decision, is named LabelName.
*/
func Columns(n int) []Feature {
	features := make([]Feature, 0, n)
	for i := 0; i < n; i++ {
		name := strconv.Itoa(i)
		if i == n-1 {
			name = LabelName
		}
		features = append(features, NewDiscreteFeature(name, i, nil))
	}
	return features
}

/*
Name returns a string with the name of the feature
*/
func (df *DiscreteFeature) Name() string {
	return df.name
}

// Index returns the column of the feature on a row.
func (df *DiscreteFeature) Index() int {
	return df.index
}

/*
Valid receives a value and returns a boolean and an error. When the value is
included in the available values of the feature, or the feature does not
restrict its values, the method returns true and nil. Otherwise it returns
false and an error describing the reason.
*/
func (df *DiscreteFeature) Valid(value string) (bool, error) {
	if len(df.availableValues) == 0 {
		return true, nil
	}
	for _, av := range df.availableValues {
		if av == value {
			return true, nil
		}
	}
	return false, fmt.Errorf("discrete feature %s got unknown value %s", df.Name(), value)
}

/*
AvailableValues returns a string slice with the values available for the feature
*/
func (df *DiscreteFeature) AvailableValues() []string {
	return df.availableValues
}

func (df *DiscreteFeature) String() string {
	return df.name
}

package tree

// PredictionError represents an error related with predictions
type PredictionError string

/*
ErrCannotPredictFromSample is the error returned by the Predict method of a tree
when the prediction cannot be made because the tree itself cannot make
a prediction for that kind of sample: no edge out of some node on its path
matches the sample's value. Callers count such samples as unclassified.
*/
const ErrCannotPredictFromSample = PredictionError("no prediction available for this kind of sample")

/*
ErrIncompleteTree is the error returned when a prediction reaches a node
that is neither a leaf nor split on a feature, that is, a node that has
not been developed yet.
*/
const ErrIncompleteTree = PredictionError("reached an undeveloped node")

func (pe PredictionError) Error() string {
	return string(pe)
}

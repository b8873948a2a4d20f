/*
Package info provides the information-theoretic measures used to decide how a
tree node is split: the entropy of a distribution, the conditional information
of the decisions given an attribute, the information gain, the split
information and the gain ratio. All measures are in bits.
*/
package info

import (
	"math"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/emirpasic/gods/sets/linkedhashset"
)

/*
Entropy takes a slice of probabilities and returns -Σ p·log2(p) over them.
Zero probabilities contribute nothing. The probabilities are not required to
add up to 1.
*/
func Entropy(ps []float64) float64 {
	var result float64
	for _, p := range ps {
		if p == 0 {
			continue
		}
		result -= p * math.Log2(p)
	}
	return result
}

/*
Conditional takes the probabilities of the distinct values of an attribute,
the attribute value of every row and the decision of every row, and returns
Info(A,T): the entropy of the decisions among the rows sharing each attribute
value, weighted by that value's probability.

ps must be ordered by the first appearance of each value in values, and
values and decisions must be parallel slices. The function does not check
either precondition.
*/
func Conditional(ps []float64, values, decisions []string) float64 {
	distinctDecisions := linkedhashset.New()
	valueDecisions := linkedhashmap.New()
	valueCounts := make(map[string]int)
	for i, v := range values {
		distinctDecisions.Add(decisions[i])
		dc, ok := valueDecisions.Get(v)
		if !ok {
			dc = make(map[string]int)
			valueDecisions.Put(v, dc)
		}
		dc.(map[string]int)[decisions[i]]++
		valueCounts[v]++
	}
	keys := valueDecisions.Keys()
	var result float64
	for i, p := range ps {
		v := keys[i].(string)
		dc, _ := valueDecisions.Get(v)
		total := float64(valueCounts[v])
		cps := make([]float64, 0, distinctDecisions.Size())
		for _, d := range distinctDecisions.Values() {
			cps = append(cps, float64(dc.(map[string]int)[d.(string)])/total)
		}
		result += p * Entropy(cps)
	}
	return result
}

// Gain returns the information gain infoT - infoAnT.
func Gain(infoT, infoAnT float64) float64 {
	return infoT - infoAnT
}

// SplitInfo returns the entropy of an attribute's own value distribution.
func SplitInfo(ps []float64) float64 {
	return Entropy(ps)
}

/*
GainRatio returns gain / splitInfo, or 0 when splitInfo is 0: a single-valued
attribute cannot discriminate and gets the minimum score.
*/
func GainRatio(gain, splitInfo float64) float64 {
	if splitInfo == 0 {
		return 0
	}
	return gain / splitInfo
}

/*
Probabilities takes a slice of counts and returns the relative frequency of
each of them over their sum. An empty or all-zero slice yields zeros.
*/
func Probabilities(counts []int) []float64 {
	var total int
	for _, c := range counts {
		total += c
	}
	result := make([]float64, len(counts))
	if total == 0 {
		return result
	}
	for i, c := range counts {
		result[i] = float64(c) / float64(total)
	}
	return result
}

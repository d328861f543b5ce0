// Package hmm estimates a first-order hidden Markov model from tagged
// sentences and decodes plain sentences with the Viterbi algorithm.
//
// Probabilities are maximum-likelihood ratios of corpus counts. Pairs never
// seen in training are given a flat floor probability instead of being
// smoothed, and decoding multiplies probabilities directly rather than
// summing logarithms.
package hmm

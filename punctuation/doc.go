// Package punctuation merges externally predicted punctuation into an
// attributed word stream.
//
// Reflow appends predicted sentence-ending marks to words that do not
// already carry punctuation, protecting acronyms such as "U.S." and
// collapsing doubled periods. Realign then moves short cross-speaker runs
// back to the majority speaker of their sentence. Restorer is the contract
// implemented by punctuation-model backends; see the sidecar and labelfile
// sub-packages.
package punctuation

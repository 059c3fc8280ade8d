// Package domain defines the data the homepage renders: the fixed task list
// and the Variant deciding whether the homepage shows it.
package domain

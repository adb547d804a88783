// Package textutil provides the text normalization and match scoring used to
// rank provider search results against an item label.
//
// Normalization lowercases, folds diacritics ("Amélie" and "Amelie" compare
// equal), and collapses punctuation into spaces. Scoring builds token sets
// for a query and a candidate title and weighs recall above precision: a
// candidate missing query words is penalized harder than one carrying extra
// words.
package textutil

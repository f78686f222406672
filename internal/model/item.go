package model

import "strings"

// Item is the domain model for a todo entry.
// Its position in the store is its index; the index itself is never persisted.
type Item struct {
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// NewItem builds a pending item from command words. Every word is followed
// by a single space, so `add buy milk` stores "buy milk ".
func NewItem(words ...string) Item {
	var b strings.Builder
	for _, w := range words {
		b.WriteString(w)
		b.WriteByte(' ')
	}
	return Item{Text: b.String()}
}

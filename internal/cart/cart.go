// Package cart provides the pure builders that compute the next cart array
// for add, increase, decrease and delete. Builders never mutate their
// inputs; every call returns a fresh slice so subscribers can change-detect
// by reference.
package cart

import "github.com/MhasnainGIT/e-commerce/internal/store"

// Add appends a new line for product with quantity 1. The cart is returned
// unchanged (as a copy) when the product is already present or its stock is
// exhausted; repeat adds are expected to go through Increase.
func Add(product store.Product, lines []store.CartLine) []store.CartLine {
	if product.InStock == 0 {
		return clone(lines)
	}
	for _, line := range lines {
		if line.ProductID == product.ID {
			return clone(lines)
		}
	}
	next := clone(lines)
	return append(next, store.CartLine{
		ProductID: product.ID,
		Title:     product.Title,
		Images:    product.Images,
		Price:     product.Price,
		InStock:   product.InStock,
		Sold:      product.Sold,
		Quantity:  1,
	})
}

// Increase increments the matching line's quantity by 1, capped at that
// line's InStock. Past the cap, or for an absent id, the cart is unchanged.
func Increase(lines []store.CartLine, id string) []store.CartLine {
	next := clone(lines)
	for i := range next {
		if next[i].ProductID == id && next[i].Quantity < next[i].InStock {
			next[i].Quantity++
		}
	}
	return next
}

// Decrease decrements the matching line's quantity by 1, floored at 1.
// At the floor, or for an absent id, the cart is unchanged.
func Decrease(lines []store.CartLine, id string) []store.CartLine {
	next := clone(lines)
	for i := range next {
		if next[i].ProductID == id && next[i].Quantity > 1 {
			next[i].Quantity--
		}
	}
	return next
}

// Delete removes the line with the matching id. An absent id is a no-op.
func Delete(lines []store.CartLine, id string) []store.CartLine {
	next := make([]store.CartLine, 0, len(lines))
	for _, line := range lines {
		if line.ProductID != id {
			next = append(next, line)
		}
	}
	return next
}

// Total sums price times quantity over the cart.
func Total(lines []store.CartLine) float64 {
	var total float64
	for _, line := range lines {
		total += line.Price * float64(line.Quantity)
	}
	return total
}

func clone(lines []store.CartLine) []store.CartLine {
	next := make([]store.CartLine, len(lines))
	copy(next, lines)
	return next
}

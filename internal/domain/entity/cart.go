package entity

// CartLine is one line of the working cart. Price is a snapshot taken when
// the item was first added, so later catalog edits never change an open cart.
// A persisted line always has Quantity >= 1; a line stepped to zero is
// removed, never stored.
type CartLine struct {
	ItemID   string  `json:"itemId"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Cart is the full working line-item list, persisted whole on every mutation.
type Cart []CartLine

// TotalLineCount returns the summed quantity across all lines (badge count).
func (c Cart) TotalLineCount() int {
	total := 0
	for _, line := range c {
		total += line.Quantity
	}
	return total
}

// Clone returns a value copy so snapshots never alias the live cart.
func (c Cart) Clone() Cart {
	if c == nil {
		return nil
	}
	out := make(Cart, len(c))
	copy(out, c)
	return out
}

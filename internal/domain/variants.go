package domain

// RecomputeVariantAggregates rewrites Stock, Colors and Sizes from the
// current variant list. It must be called after every mutation of Variants;
// callers never supply the aggregates themselves.
//
// Invariants restored: Stock == sum of variant stocks (negative counts are
// treated as zero), Colors and Sizes are deduplicated projections of the
// variants in first-seen order.
func (p *Product) RecomputeVariantAggregates() {
	if len(p.Variants) == 0 {
		p.Colors = nil
		p.Sizes = nil
		return
	}

	total := 0
	colors := make([]string, 0, len(p.Variants))
	sizes := make([]string, 0, len(p.Variants))
	seenColor := make(map[string]struct{}, len(p.Variants))
	seenSize := make(map[string]struct{}, len(p.Variants))

	for _, v := range p.Variants {
		if v.Stock > 0 {
			total += v.Stock
		}
		if v.Color != "" {
			if _, ok := seenColor[v.Color]; !ok {
				seenColor[v.Color] = struct{}{}
				colors = append(colors, v.Color)
			}
		}
		if v.Size != "" {
			if _, ok := seenSize[v.Size]; !ok {
				seenSize[v.Size] = struct{}{}
				sizes = append(sizes, v.Size)
			}
		}
	}

	p.Stock = total
	p.Colors = colors
	p.Sizes = sizes
}

// FindVariant returns the variant matching the (color, size) pair, which is
// how order line items address variant stock.
func (p *Product) FindVariant(color, size string) (*Variant, bool) {
	for i := range p.Variants {
		if p.Variants[i].Color == color && p.Variants[i].Size == size {
			return &p.Variants[i], true
		}
	}
	return nil, false
}

// FindVariantByID returns the variant with the given internal id, used by
// direct variant edits.
func (p *Product) FindVariantByID(variantID string) (*Variant, bool) {
	for i := range p.Variants {
		if p.Variants[i].ID == variantID {
			return &p.Variants[i], true
		}
	}
	return nil, false
}

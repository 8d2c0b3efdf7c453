package responses

// LocatorDocument is the raw store-locator response. Stores keeps its
// entries undecoded: record validation happens one entry at a time so a
// malformed entry can cut the sequence short instead of failing the fetch.
type LocatorDocument struct {
	Stores []any
}

func ParseLocatorDocument(doc map[string]any) LocatorDocument {
	out := LocatorDocument{}
	if arr, ok := doc["Stores"].([]any); ok {
		out.Stores = arr
	}
	return out
}

// MenuDocument holds the four menu sections the normalizer consumes. A
// missing or mistyped section is simply empty; the caller decides whether
// an all-empty document is worth reporting.
type MenuDocument struct {
	Categories []any
	Products   map[string]any
	Variants   map[string]any
	Coupons    map[string]any
}

func ParseMenuDocument(doc map[string]any) MenuDocument {
	out := MenuDocument{
		Products: section(doc, "Products"),
		Variants: section(doc, "Variants"),
		Coupons:  section(doc, "Coupons"),
	}

	// The category tree hides under Categorization -> Food -> Categories.
	if cz, ok := doc["Categorization"].(map[string]any); ok {
		if food, ok := cz["Food"].(map[string]any); ok {
			if cats, ok := food["Categories"].([]any); ok {
				out.Categories = cats
			}
		}
	}

	return out
}

// Empty reports whether the document carried nothing usable at all.
func (d MenuDocument) Empty() bool {
	return len(d.Categories) == 0 &&
		len(d.Products) == 0 &&
		len(d.Variants) == 0 &&
		len(d.Coupons) == 0
}

func section(doc map[string]any, key string) map[string]any {
	if m, ok := doc[key].(map[string]any); ok {
		return m
	}
	return nil
}

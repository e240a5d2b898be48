package feed

// FeatureLink is the upstream type tag identifying a hyperlink facet feature.
const FeatureLink = "app.bsky.richtext.facet#link"

// ExtractLinks returns the target URIs of all hyperlink features across the
// given facets, preserving facet order and then feature order within a facet.
// Non-link or incomplete features are excluded; a nil or empty facet list
// yields an empty result.
func ExtractLinks(facets []Facet) []string {
	links := make([]string, 0, len(facets))
	for _, facet := range facets {
		for _, feature := range facet.Features {
			if feature.Type != FeatureLink || feature.URI == "" {
				continue
			}
			links = append(links, feature.URI)
		}
	}
	return links
}

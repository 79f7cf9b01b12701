package osm2rail

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var (
	// Values of `railway` tag which are treated as track by default
	defaultRailwayValues = []string{"rail"}
)

// Tagged is anything which exposes OSM tags: ways and nodes
type Tagged interface {
	TagMap() map[string]string
}

// TagFrequency is key -> value -> number of occurrences
type TagFrequency map[string]map[string]int64

// CollectTagFrequency counts tag usage across given elements
func CollectTagFrequency[T Tagged](elements []T) TagFrequency {
	freq := make(TagFrequency)
	for _, element := range elements {
		freq.Add(element)
	}
	return freq
}

// Add counts tags of a single element
func (freq TagFrequency) Add(element Tagged) {
	for key, value := range element.TagMap() {
		values, ok := freq[key]
		if !ok {
			values = make(map[string]int64)
			freq[key] = values
		}
		values[value]++
	}
}

// Merge adds counts of other to freq
func (freq TagFrequency) Merge(other TagFrequency) {
	for key, otherValues := range other {
		values, ok := freq[key]
		if !ok {
			values = make(map[string]int64, len(otherValues))
			freq[key] = values
		}
		for value, count := range otherValues {
			values[value] += count
		}
	}
}

// Filter returns new table with key/value pairs which have been met at least minCount times.
// Keys without any remaining value are dropped. Receiver is not modified
func (freq TagFrequency) Filter(minCount int64) TagFrequency {
	filtered := make(TagFrequency)
	for key, values := range freq {
		kept := make(map[string]int64)
		for value, count := range values {
			if count >= minCount {
				kept[value] = count
			}
		}
		if len(kept) == 0 {
			continue
		}
		filtered[key] = kept
	}
	return filtered
}

// Keys returns tag keys in ascending order
func (freq TagFrequency) Keys() []string {
	keys := maps.Keys(freq)
	slices.Sort(keys)
	return keys
}

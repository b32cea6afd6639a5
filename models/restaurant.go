package models

// Restaurant is a single swipeable candidate. ID is unique within a party;
// every other field is descriptive and consumed only by presentation.
type Restaurant struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	ImageURL    string  `json:"image_url"`
	Description string  `json:"description,omitempty"`
	Rating      float64 `json:"rating,omitempty"`
	Price       string  `json:"price,omitempty"`
}

// BatchEqual reports whether two candidate batches contain the same
// restaurant ids in the same order. The reconciler uses it to tell a
// genuinely new batch apart from a redundant re-push of the previous one.
func BatchEqual(a, b []Restaurant) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			return false
		}
	}
	return true
}

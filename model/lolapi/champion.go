package modellolapi

// Champion is a single entry of the ddragon champion.json data mapping.
// Only the fields the catalog projects are decoded.
type Champion struct {
	Version string `json:"version"`
	ID      string `json:"id"`
	Key     string `json:"key"`
	Name    string `json:"name"`
	Title   string `json:"title"`
	Image   struct {
		Full   string `json:"full"`
		Sprite string `json:"sprite"`
		Group  string `json:"group"`
	} `json:"image"`
}
